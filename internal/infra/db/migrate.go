package db

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed seeds/seed.sql
var seedSQL string

// tables is applied in order; referenced tables come first.
var tables = []struct {
	name string
	ddl  string
}{
	{"news", `
CREATE TABLE IF NOT EXISTS news (
    id           BIGSERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    slug         TEXT NOT NULL UNIQUE,
    excerpt      TEXT NOT NULL DEFAULT '',
    content      TEXT NOT NULL DEFAULT '',
    image_url    TEXT NOT NULL DEFAULT '',
    category     VARCHAR(100) NOT NULL DEFAULT 'general',
    author       VARCHAR(200) NOT NULL DEFAULT '',
    published    BOOLEAN NOT NULL DEFAULT FALSE,
    featured     BOOLEAN NOT NULL DEFAULT FALSE,
    source_url   TEXT UNIQUE,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"news_feeds", `
CREATE TABLE IF NOT EXISTS news_feeds (
    id              BIGSERIAL PRIMARY KEY,
    name            TEXT NOT NULL,
    feed_url        TEXT NOT NULL UNIQUE,
    category        VARCHAR(100) NOT NULL DEFAULT 'general',
    active          BOOLEAN NOT NULL DEFAULT TRUE,
    last_crawled_at TIMESTAMPTZ,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"live_streams", `
CREATE TABLE IF NOT EXISTS live_streams (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    stream_url    TEXT NOT NULL,
    thumbnail_url TEXT NOT NULL DEFAULT '',
    channel       VARCHAR(50) NOT NULL DEFAULT '',
    status        VARCHAR(20) NOT NULL DEFAULT 'offline'
                  CHECK (status IN ('live', 'signal_open', 'recess', 'offline')),
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"programs", `
CREATE TABLE IF NOT EXISTS programs (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    image_url     TEXT NOT NULL DEFAULT '',
    host          TEXT NOT NULL DEFAULT '',
    schedule      TEXT NOT NULL DEFAULT '',
    category      VARCHAR(100) NOT NULL DEFAULT '',
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"radio_categories", `
CREATE TABLE IF NOT EXISTS radio_categories (
    id          BIGSERIAL PRIMARY KEY,
    name        TEXT NOT NULL,
    slug        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    color       VARCHAR(7) NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"radio_programs", `
CREATE TABLE IF NOT EXISTS radio_programs (
    id          BIGSERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    host        TEXT NOT NULL DEFAULT '',
    schedule    TEXT NOT NULL DEFAULT '',
    image_url   TEXT NOT NULL DEFAULT '',
    category_id BIGINT REFERENCES radio_categories(id) ON DELETE SET NULL,
    active      BOOLEAN NOT NULL DEFAULT TRUE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"radio_episodes", `
CREATE TABLE IF NOT EXISTS radio_episodes (
    id               BIGSERIAL PRIMARY KEY,
    program_id       BIGINT NOT NULL REFERENCES radio_programs(id) ON DELETE CASCADE,
    title            TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    audio_url        TEXT NOT NULL,
    duration_seconds INTEGER NOT NULL DEFAULT 0,
    episode_number   INTEGER NOT NULL DEFAULT 0,
    published_at     TIMESTAMPTZ,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"organs", `
CREATE TABLE IF NOT EXISTS organs (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    organ_type    VARCHAR(100) NOT NULL DEFAULT '',
    image_url     TEXT NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"parliamentary_groups", `
CREATE TABLE IF NOT EXISTS parliamentary_groups (
    id            BIGSERIAL PRIMARY KEY,
    name          TEXT NOT NULL,
    abbreviation  VARCHAR(20) NOT NULL DEFAULT '',
    logo_url      TEXT NOT NULL DEFAULT '',
    color         VARCHAR(7) NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"legislators", `
CREATE TABLE IF NOT EXISTS legislators (
    id                     BIGSERIAL PRIMARY KEY,
    name                   TEXT NOT NULL,
    chamber                VARCHAR(20) NOT NULL CHECK (chamber IN ('diputados', 'senado')),
    state                  VARCHAR(100) NOT NULL DEFAULT '',
    district               VARCHAR(100) NOT NULL DEFAULT '',
    parliamentary_group_id BIGINT REFERENCES parliamentary_groups(id) ON DELETE SET NULL,
    photo_url              TEXT NOT NULL DEFAULT '',
    email                  TEXT NOT NULL DEFAULT '',
    biography              TEXT NOT NULL DEFAULT '',
    active                 BOOLEAN NOT NULL DEFAULT TRUE,
    created_at             TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at             TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"homepage_config", `
CREATE TABLE IF NOT EXISTS homepage_config (
    id                 BIGINT PRIMARY KEY CHECK (id = 1),
    hero_title         TEXT NOT NULL DEFAULT '',
    hero_subtitle      TEXT NOT NULL DEFAULT '',
    hero_image_url     TEXT NOT NULL DEFAULT '',
    hero_video_url     TEXT NOT NULL DEFAULT '',
    featured_stream_id BIGINT REFERENCES live_streams(id) ON DELETE SET NULL,
    show_news          BOOLEAN NOT NULL DEFAULT TRUE,
    show_streams       BOOLEAN NOT NULL DEFAULT TRUE,
    show_programs      BOOLEAN NOT NULL DEFAULT TRUE,
    show_radio         BOOLEAN NOT NULL DEFAULT TRUE,
    news_limit         INTEGER NOT NULL DEFAULT 6 CHECK (news_limit BETWEEN 1 AND 24),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"defensoria_content", `
CREATE TABLE IF NOT EXISTS defensoria_content (
    id            BIGSERIAL PRIMARY KEY,
    section       VARCHAR(50) NOT NULL,
    title         TEXT NOT NULL,
    content       TEXT NOT NULL DEFAULT '',
    document_url  TEXT NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0,
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"transparency_sections", `
CREATE TABLE IF NOT EXISTS transparency_sections (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    slug          TEXT NOT NULL UNIQUE,
    description   TEXT NOT NULL DEFAULT '',
    content       TEXT NOT NULL DEFAULT '',
    document_url  TEXT NOT NULL DEFAULT '',
    display_order INTEGER NOT NULL DEFAULT 0,
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"documents", `
CREATE TABLE IF NOT EXISTS documents (
    id           BIGSERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    file_url     TEXT NOT NULL,
    file_type    VARCHAR(20) NOT NULL DEFAULT '',
    category     VARCHAR(100) NOT NULL DEFAULT '',
    file_size    BIGINT NOT NULL DEFAULT 0,
    published_at TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
	{"datasets", `
CREATE TABLE IF NOT EXISTS datasets (
    id           BIGSERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    description  TEXT NOT NULL DEFAULT '',
    file_url     TEXT NOT NULL,
    format       VARCHAR(10) NOT NULL CHECK (format IN ('csv', 'json', 'xlsx', 'xml', 'pdf')),
    category     VARCHAR(100) NOT NULL DEFAULT '',
    file_size    BIGINT NOT NULL DEFAULT 0,
    last_updated TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`},
}

// indexes back the list filters and orderings used by the repositories.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_news_published_at ON news(published_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_news_category ON news(category)`,
	`CREATE INDEX IF NOT EXISTS idx_news_featured ON news(featured) WHERE featured = TRUE`,
	`CREATE INDEX IF NOT EXISTS idx_live_streams_status ON live_streams(status)`,
	`CREATE INDEX IF NOT EXISTS idx_radio_programs_category_id ON radio_programs(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_radio_episodes_program_id ON radio_episodes(program_id)`,
	`CREATE INDEX IF NOT EXISTS idx_legislators_chamber ON legislators(chamber)`,
	`CREATE INDEX IF NOT EXISTS idx_legislators_group_id ON legislators(parliamentary_group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_defensoria_content_section ON defensoria_content(section)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category)`,
	`CREATE INDEX IF NOT EXISTS idx_datasets_category ON datasets(category)`,
}

// searchIndexes speed up ILIKE news search. They need pg_trgm, which may be
// unavailable without superuser rights, so failures are ignored.
var searchIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_news_title_gin ON news USING gin(title gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_news_excerpt_gin ON news USING gin(excerpt gin_trgm_ops)`,
}

// MigrateUp creates every table and index and inserts the seed rows.
// It is idempotent.
func MigrateUp(db *sql.DB) error {
	for _, t := range tables {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.name, err)
		}
	}

	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	_, _ = db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	for _, idx := range searchIndexes {
		_, _ = db.Exec(idx)
	}

	// Seed rows use ON CONFLICT DO NOTHING.
	if _, err := db.Exec(seedSQL); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// MigrateDown drops every table in reverse creation order.
// Use with caution: this deletes all content.
func MigrateDown(db *sql.DB) error {
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := db.Exec(`DROP TABLE IF EXISTS ` + tables[i].name + ` CASCADE`); err != nil {
			return fmt.Errorf("drop table %s: %w", tables[i].name, err)
		}
	}
	return nil
}

// TableNames returns the managed tables in creation order.
func TableNames() []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.name
	}
	return names
}
