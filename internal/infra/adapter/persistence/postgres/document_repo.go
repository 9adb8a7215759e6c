package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

/* ─────────────────────────── documents ─────────────────────────── */

const documentColumns = `id, title, description, file_url, file_type, category, file_size,
published_at, created_at, updated_at`

type DocumentRepo struct {
	db DBTX
}

func NewDocumentRepo(db DBTX) repository.DocumentRepository {
	return &DocumentRepo{db: db}
}

func scanDocument(row rowScanner) (*entity.Document, error) {
	var d entity.Document
	if err := row.Scan(&d.ID, &d.Title, &d.Description, &d.FileURL, &d.FileType, &d.Category,
		&d.FileSize, &d.PublishedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func documentWhere(filters repository.DocumentFilters) whereBuilder {
	var where whereBuilder
	if filters.Category != "" {
		where.add("category = ?", filters.Category)
	}
	return where
}

func (repo *DocumentRepo) List(ctx context.Context, filters repository.DocumentFilters, offset, limit int) ([]*entity.Document, error) {
	where := documentWhere(filters)
	n := where.next()
	query := fmt.Sprintf(`
SELECT %s
FROM documents
%s
ORDER BY COALESCE(published_at, created_at) DESC, id DESC
LIMIT $%d OFFSET $%d`, documentColumns, where.clause(), n, n+1)
	args := append(where.args, limit, offset)
	return queryAll(ctx, repo.db, "List", query, scanDocument, args...)
}

func (repo *DocumentRepo) Count(ctx context.Context, filters repository.DocumentFilters) (int64, error) {
	where := documentWhere(filters)
	var count int64
	query := "SELECT COUNT(*) FROM documents " + where.clause()
	if err := repo.db.QueryRowContext(ctx, query, where.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *DocumentRepo) Get(ctx context.Context, id int64) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanDocument, id)
}

func (repo *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	const query = `
INSERT INTO documents (title, description, file_url, file_type, category, file_size, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		d.Title, d.Description, d.FileURL, d.FileType, d.Category, d.FileSize, d.PublishedAt,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return mapError("Create", err)
}

func (repo *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	const query = `
UPDATE documents
SET title = $1, description = $2, file_url = $3, file_type = $4, category = $5,
    file_size = $6, published_at = $7, updated_at = NOW()
WHERE id = $8
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		d.Title, d.Description, d.FileURL, d.FileType, d.Category, d.FileSize, d.PublishedAt, d.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	d.UpdatedAt = updatedAt
	return nil
}

func (repo *DocumentRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM documents WHERE id = $1`, id)
}

/* ─────────────────────────── datasets ─────────────────────────── */

const datasetColumns = `id, title, description, file_url, format, category, file_size,
last_updated, created_at, updated_at`

type DatasetRepo struct {
	db DBTX
}

func NewDatasetRepo(db DBTX) repository.DatasetRepository {
	return &DatasetRepo{db: db}
}

func scanDataset(row rowScanner) (*entity.Dataset, error) {
	var d entity.Dataset
	if err := row.Scan(&d.ID, &d.Title, &d.Description, &d.FileURL, &d.Format, &d.Category,
		&d.FileSize, &d.LastUpdated, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (repo *DatasetRepo) List(ctx context.Context, filters repository.DocumentFilters) ([]*entity.Dataset, error) {
	var where whereBuilder
	if filters.Category != "" {
		where.add("category = ?", filters.Category)
	}
	if filters.Format != "" {
		where.add("format = ?", filters.Format)
	}
	query := fmt.Sprintf(`
SELECT %s
FROM datasets
%s
ORDER BY COALESCE(last_updated, created_at) DESC, id DESC`, datasetColumns, where.clause())
	return queryAll(ctx, repo.db, "List", query, scanDataset, where.args...)
}

func (repo *DatasetRepo) Get(ctx context.Context, id int64) (*entity.Dataset, error) {
	query := `SELECT ` + datasetColumns + ` FROM datasets WHERE id = $1 LIMIT 1`
	return queryOne(ctx, repo.db, "Get", query, scanDataset, id)
}

func (repo *DatasetRepo) Create(ctx context.Context, d *entity.Dataset) error {
	const query = `
INSERT INTO datasets (title, description, file_url, format, category, file_size, last_updated)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		d.Title, d.Description, d.FileURL, d.Format, d.Category, d.FileSize, d.LastUpdated,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	return mapError("Create", err)
}

func (repo *DatasetRepo) Update(ctx context.Context, d *entity.Dataset) error {
	const query = `
UPDATE datasets
SET title = $1, description = $2, file_url = $3, format = $4, category = $5,
    file_size = $6, last_updated = $7, updated_at = NOW()
WHERE id = $8
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		d.Title, d.Description, d.FileURL, d.Format, d.Category, d.FileSize, d.LastUpdated, d.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	d.UpdatedAt = updatedAt
	return nil
}

func (repo *DatasetRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM datasets WHERE id = $1`, id)
}
