package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

/* ─────────────────────────── categories ─────────────────────────── */

const radioCategoryColumns = `id, name, slug, description, color, created_at`

type RadioCategoryRepo struct {
	db DBTX
}

func NewRadioCategoryRepo(db DBTX) repository.RadioCategoryRepository {
	return &RadioCategoryRepo{db: db}
}

func scanRadioCategory(row rowScanner) (*entity.RadioCategory, error) {
	var c entity.RadioCategory
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (repo *RadioCategoryRepo) List(ctx context.Context) ([]*entity.RadioCategory, error) {
	query := `SELECT ` + radioCategoryColumns + ` FROM radio_categories ORDER BY name ASC`
	return queryAll(ctx, repo.db, "List", query, scanRadioCategory)
}

func (repo *RadioCategoryRepo) Get(ctx context.Context, id int64) (*entity.RadioCategory, error) {
	query := `SELECT ` + radioCategoryColumns + ` FROM radio_categories WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanRadioCategory, id)
}

func (repo *RadioCategoryRepo) Create(ctx context.Context, c *entity.RadioCategory) error {
	const query = `
INSERT INTO radio_categories (name, slug, description, color)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query, c.Name, c.Slug, c.Description, c.Color).
		Scan(&c.ID, &c.CreatedAt)
	return mapError("Create", err)
}

func (repo *RadioCategoryRepo) Update(ctx context.Context, c *entity.RadioCategory) error {
	const query = `
UPDATE radio_categories
SET name = $1, slug = $2, description = $3, color = $4
WHERE id = $5`
	return execAffectingOne(ctx, repo.db, "Update", query, c.Name, c.Slug, c.Description, c.Color, c.ID)
}

func (repo *RadioCategoryRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM radio_categories WHERE id = $1`, id)
}

/* ─────────────────────────── programs ─────────────────────────── */

const radioProgramColumns = `id, title, description, host, schedule, image_url, category_id,
active, created_at, updated_at`

type RadioProgramRepo struct {
	db DBTX
}

func NewRadioProgramRepo(db DBTX) repository.RadioProgramRepository {
	return &RadioProgramRepo{db: db}
}

func scanRadioProgram(row rowScanner) (*entity.RadioProgram, error) {
	var p entity.RadioProgram
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Host, &p.Schedule, &p.ImageURL,
		&p.CategoryID, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *RadioProgramRepo) List(ctx context.Context, filters repository.RadioProgramFilters) ([]*entity.RadioProgram, error) {
	var where whereBuilder
	if filters.CategoryID != nil {
		where.add("category_id = ?", *filters.CategoryID)
	}
	if filters.ActiveOnly {
		where.addRaw("active = TRUE")
	}
	query := fmt.Sprintf(`
SELECT %s
FROM radio_programs
%s
ORDER BY title ASC`, radioProgramColumns, where.clause())
	return queryAll(ctx, repo.db, "List", query, scanRadioProgram, where.args...)
}

func (repo *RadioProgramRepo) Get(ctx context.Context, id int64) (*entity.RadioProgram, error) {
	query := `SELECT ` + radioProgramColumns + ` FROM radio_programs WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanRadioProgram, id)
}

func (repo *RadioProgramRepo) Create(ctx context.Context, p *entity.RadioProgram) error {
	const query = `
INSERT INTO radio_programs (title, description, host, schedule, image_url, category_id, active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Host, p.Schedule, p.ImageURL, p.CategoryID, p.Active,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapError("Create", err)
}

func (repo *RadioProgramRepo) Update(ctx context.Context, p *entity.RadioProgram) error {
	const query = `
UPDATE radio_programs
SET title = $1, description = $2, host = $3, schedule = $4, image_url = $5,
    category_id = $6, active = $7, updated_at = NOW()
WHERE id = $8
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Host, p.Schedule, p.ImageURL, p.CategoryID, p.Active, p.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	p.UpdatedAt = updatedAt
	return nil
}

func (repo *RadioProgramRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM radio_programs WHERE id = $1`, id)
}

/* ─────────────────────────── episodes ─────────────────────────── */

const radioEpisodeColumns = `id, program_id, title, description, audio_url, duration_seconds,
episode_number, published_at, created_at, updated_at`

type RadioEpisodeRepo struct {
	db DBTX
}

func NewRadioEpisodeRepo(db DBTX) repository.RadioEpisodeRepository {
	return &RadioEpisodeRepo{db: db}
}

func scanRadioEpisode(row rowScanner) (*entity.RadioEpisode, error) {
	var e entity.RadioEpisode
	if err := row.Scan(&e.ID, &e.ProgramID, &e.Title, &e.Description, &e.AudioURL,
		&e.DurationSeconds, &e.EpisodeNumber, &e.PublishedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func episodeWhere(programID *int64) whereBuilder {
	var where whereBuilder
	if programID != nil {
		where.add("program_id = ?", *programID)
	}
	return where
}

func (repo *RadioEpisodeRepo) List(ctx context.Context, programID *int64, offset, limit int) ([]*entity.RadioEpisode, error) {
	where := episodeWhere(programID)
	n := where.next()
	query := fmt.Sprintf(`
SELECT %s
FROM radio_episodes
%s
ORDER BY COALESCE(published_at, created_at) DESC, id DESC
LIMIT $%d OFFSET $%d`, radioEpisodeColumns, where.clause(), n, n+1)
	args := append(where.args, limit, offset)
	return queryAll(ctx, repo.db, "List", query, scanRadioEpisode, args...)
}

func (repo *RadioEpisodeRepo) Count(ctx context.Context, programID *int64) (int64, error) {
	where := episodeWhere(programID)
	var count int64
	query := "SELECT COUNT(*) FROM radio_episodes " + where.clause()
	if err := repo.db.QueryRowContext(ctx, query, where.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *RadioEpisodeRepo) Get(ctx context.Context, id int64) (*entity.RadioEpisode, error) {
	query := `SELECT ` + radioEpisodeColumns + ` FROM radio_episodes WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanRadioEpisode, id)
}

func (repo *RadioEpisodeRepo) Create(ctx context.Context, e *entity.RadioEpisode) error {
	const query = `
INSERT INTO radio_episodes (program_id, title, description, audio_url, duration_seconds, episode_number, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		e.ProgramID, e.Title, e.Description, e.AudioURL, e.DurationSeconds, e.EpisodeNumber, e.PublishedAt,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapError("Create", err)
}

func (repo *RadioEpisodeRepo) Update(ctx context.Context, e *entity.RadioEpisode) error {
	const query = `
UPDATE radio_episodes
SET program_id = $1, title = $2, description = $3, audio_url = $4,
    duration_seconds = $5, episode_number = $6, published_at = $7, updated_at = NOW()
WHERE id = $8
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		e.ProgramID, e.Title, e.Description, e.AudioURL, e.DurationSeconds, e.EpisodeNumber, e.PublishedAt, e.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	e.UpdatedAt = updatedAt
	return nil
}

func (repo *RadioEpisodeRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM radio_episodes WHERE id = $1`, id)
}
