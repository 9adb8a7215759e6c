package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/search"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

const newsColumns = `id, title, slug, excerpt, content, image_url, category, author,
published, featured, source_url, published_at, created_at, updated_at`

type NewsRepo struct {
	db           DBTX
	queryBuilder *NewsQueryBuilder
}

func NewNewsRepo(db DBTX) repository.NewsRepository {
	return &NewsRepo{
		db:           db,
		queryBuilder: NewNewsQueryBuilder(),
	}
}

func scanNews(row rowScanner) (*entity.News, error) {
	var n entity.News
	if err := row.Scan(&n.ID, &n.Title, &n.Slug, &n.Excerpt, &n.Content, &n.ImageURL,
		&n.Category, &n.Author, &n.Published, &n.Featured, &n.SourceURL,
		&n.PublishedAt, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns news newest first. Rows without published_at sort by created_at.
func (repo *NewsRepo) List(ctx context.Context, filters repository.NewsFilters, offset, limit int) ([]*entity.News, error) {
	if len(filters.Keywords) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, search.DefaultSearchTimeout)
		defer cancel()
	}

	whereClause, args := repo.queryBuilder.BuildWhereClause(filters)
	n := len(args)
	query := fmt.Sprintf(`
SELECT %s
FROM news
%s
ORDER BY COALESCE(published_at, created_at) DESC, id DESC
LIMIT $%d OFFSET $%d`, newsColumns, whereClause, n+1, n+2)
	args = append(args, limit, offset)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.News, 0, limit)
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repo *NewsRepo) Count(ctx context.Context, filters repository.NewsFilters) (int64, error) {
	whereClause, args := repo.queryBuilder.BuildWhereClause(filters)
	query := "SELECT COUNT(*) FROM news " + whereClause

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func (repo *NewsRepo) Get(ctx context.Context, id int64) (*entity.News, error) {
	query := `SELECT ` + newsColumns + `
FROM news
WHERE id = $1
LIMIT 1`
	n, err := scanNews(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return n, nil
}

func (repo *NewsRepo) GetBySlug(ctx context.Context, slug string) (*entity.News, error) {
	query := `SELECT ` + newsColumns + `
FROM news
WHERE slug = $1
LIMIT 1`
	n, err := scanNews(repo.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetBySlug: %w", err)
	}
	return n, nil
}

func (repo *NewsRepo) Create(ctx context.Context, n *entity.News) error {
	const query = `
INSERT INTO news (title, slug, excerpt, content, image_url, category, author,
                  published, featured, source_url, published_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at, updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		n.Title, n.Slug, n.Excerpt, n.Content, n.ImageURL, n.Category, n.Author,
		n.Published, n.Featured, n.SourceURL, n.PublishedAt,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	return mapError("Create", err)
}

func (repo *NewsRepo) Update(ctx context.Context, n *entity.News) error {
	const query = `
UPDATE news
SET title = $1, slug = $2, excerpt = $3, content = $4, image_url = $5,
    category = $6, author = $7, published = $8, featured = $9,
    source_url = $10, published_at = $11, updated_at = NOW()
WHERE id = $12
RETURNING updated_at`
	row := repo.db.QueryRowContext(ctx, query,
		n.Title, n.Slug, n.Excerpt, n.Content, n.ImageURL, n.Category, n.Author,
		n.Published, n.Featured, n.SourceURL, n.PublishedAt, n.ID)
	var updatedAt time.Time
	if err := scanUpdated(row, "Update", &updatedAt); err != nil {
		return err
	}
	n.UpdatedAt = updatedAt
	return nil
}

func (repo *NewsRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM news WHERE id = $1`
	return execAffectingOne(ctx, repo.db, "Delete", query, id)
}

// ExistingSourceURLs checks a batch of feed item links in one query.
func (repo *NewsRepo) ExistingSourceURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	result := make(map[string]bool, len(urls))
	if len(urls) == 0 {
		return result, nil
	}

	args := make([]interface{}, len(urls))
	for i, u := range urls {
		args[i] = u
	}
	query := fmt.Sprintf(`SELECT source_url FROM news WHERE source_url IN (%s)`, placeholders(1, len(urls)))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ExistingSourceURLs: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("ExistingSourceURLs: Scan: %w", err)
		}
		result[u] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ExistingSourceURLs: rows.Err: %w", err)
	}
	return result, nil
}
