package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

/* ─────────────────────────── defensoria ─────────────────────────── */

const defensoriaColumns = `id, section, title, content, document_url, display_order, active, created_at, updated_at`

type DefensoriaRepo struct {
	db DBTX
}

func NewDefensoriaRepo(db DBTX) repository.DefensoriaRepository {
	return &DefensoriaRepo{db: db}
}

func scanDefensoria(row rowScanner) (*entity.DefensoriaContent, error) {
	var d entity.DefensoriaContent
	if err := row.Scan(&d.ID, &d.Section, &d.Title, &d.Content, &d.DocumentURL,
		&d.DisplayOrder, &d.Active, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (repo *DefensoriaRepo) List(ctx context.Context, section string) ([]*entity.DefensoriaContent, error) {
	var where whereBuilder
	if section != "" {
		where.add("section = ?", section)
	}
	query := fmt.Sprintf(`
SELECT %s
FROM defensoria_content
%s
ORDER BY section ASC, display_order ASC, id ASC`, defensoriaColumns, where.clause())
	return queryAll(ctx, repo.db, "List", query, scanDefensoria, where.args...)
}

func (repo *DefensoriaRepo) Get(ctx context.Context, id int64) (*entity.DefensoriaContent, error) {
	query := `SELECT ` + defensoriaColumns + ` FROM defensoria_content WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanDefensoria, id)
}

func (repo *DefensoriaRepo) Create(ctx context.Context, d *entity.DefensoriaContent) error {
	const query = `
INSERT INTO defensoria_content (section, title, content, document_url, display_order, active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query, d.Section, d.Title, d.Content, d.DocumentURL, d.DisplayOrder, d.Active).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return mapError("Create", err)
}

func (repo *DefensoriaRepo) Update(ctx context.Context, d *entity.DefensoriaContent) error {
	const query = `
UPDATE defensoria_content
SET section = $1, title = $2, content = $3, document_url = $4, display_order = $5,
    active = $6, updated_at = NOW()
WHERE id = $7
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query, d.Section, d.Title, d.Content, d.DocumentURL, d.DisplayOrder, d.Active, d.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	d.UpdatedAt = updatedAt
	return nil
}

func (repo *DefensoriaRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM defensoria_content WHERE id = $1`, id)
}

/* ─────────────────────────── transparency sections ─────────────────────────── */

const transparencyColumns = `id, title, slug, description, content, document_url, display_order, active, created_at, updated_at`

type TransparencySectionRepo struct {
	db DBTX
}

func NewTransparencySectionRepo(db DBTX) repository.TransparencySectionRepository {
	return &TransparencySectionRepo{db: db}
}

func scanTransparencySection(row rowScanner) (*entity.TransparencySection, error) {
	var s entity.TransparencySection
	if err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Description, &s.Content, &s.DocumentURL,
		&s.DisplayOrder, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (repo *TransparencySectionRepo) List(ctx context.Context) ([]*entity.TransparencySection, error) {
	query := `SELECT ` + transparencyColumns + ` FROM transparency_sections ORDER BY display_order ASC, id ASC`
	return queryAll(ctx, repo.db, "List", query, scanTransparencySection)
}

func (repo *TransparencySectionRepo) Get(ctx context.Context, id int64) (*entity.TransparencySection, error) {
	query := `SELECT ` + transparencyColumns + ` FROM transparency_sections WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanTransparencySection, id)
}

func (repo *TransparencySectionRepo) Create(ctx context.Context, s *entity.TransparencySection) error {
	const query = `
INSERT INTO transparency_sections (title, slug, description, content, document_url, display_order, active)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		s.Title, s.Slug, s.Description, s.Content, s.DocumentURL, s.DisplayOrder, s.Active,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return mapError("Create", err)
}

func (repo *TransparencySectionRepo) Update(ctx context.Context, s *entity.TransparencySection) error {
	const query = `
UPDATE transparency_sections
SET title = $1, slug = $2, description = $3, content = $4, document_url = $5,
    display_order = $6, active = $7, updated_at = NOW()
WHERE id = $8
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		s.Title, s.Slug, s.Description, s.Content, s.DocumentURL, s.DisplayOrder, s.Active, s.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	s.UpdatedAt = updatedAt
	return nil
}

func (repo *TransparencySectionRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM transparency_sections WHERE id = $1`, id)
}
