package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

const newsFeedColumns = `id, name, feed_url, category, active, last_crawled_at, created_at`

type NewsFeedRepo struct {
	db DBTX
}

func NewNewsFeedRepo(db DBTX) repository.NewsFeedRepository {
	return &NewsFeedRepo{db: db}
}

func scanNewsFeed(row rowScanner) (*entity.NewsFeed, error) {
	var f entity.NewsFeed
	if err := row.Scan(&f.ID, &f.Name, &f.FeedURL, &f.Category, &f.Active,
		&f.LastCrawledAt, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (repo *NewsFeedRepo) Get(ctx context.Context, id int64) (*entity.NewsFeed, error) {
	query := `SELECT ` + newsFeedColumns + ` FROM news_feeds WHERE id = $1 LIMIT 1`
	f, err := scanNewsFeed(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return f, nil
}

func (repo *NewsFeedRepo) List(ctx context.Context) ([]*entity.NewsFeed, error) {
	return repo.list(ctx, "List", `SELECT `+newsFeedColumns+` FROM news_feeds ORDER BY id ASC`)
}

func (repo *NewsFeedRepo) ListActive(ctx context.Context) ([]*entity.NewsFeed, error) {
	return repo.list(ctx, "ListActive", `SELECT `+newsFeedColumns+` FROM news_feeds WHERE active = TRUE ORDER BY id ASC`)
}

func (repo *NewsFeedRepo) list(ctx context.Context, op, query string) ([]*entity.NewsFeed, error) {
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	feeds := make([]*entity.NewsFeed, 0, 20)
	for rows.Next() {
		f, err := scanNewsFeed(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		feeds = append(feeds, f)
	}
	return feeds, rows.Err()
}

func (repo *NewsFeedRepo) Create(ctx context.Context, f *entity.NewsFeed) error {
	const query = `
INSERT INTO news_feeds (name, feed_url, category, active)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	err := repo.db.QueryRowContext(ctx, query, f.Name, f.FeedURL, f.Category, f.Active).
		Scan(&f.ID, &f.CreatedAt)
	return mapError("Create", err)
}

func (repo *NewsFeedRepo) Update(ctx context.Context, f *entity.NewsFeed) error {
	const query = `
UPDATE news_feeds
SET name = $1, feed_url = $2, category = $3, active = $4
WHERE id = $5`
	return execAffectingOne(ctx, repo.db, "Update", query, f.Name, f.FeedURL, f.Category, f.Active, f.ID)
}

func (repo *NewsFeedRepo) Delete(ctx context.Context, id int64) error {
	return execAffectingOne(ctx, repo.db, "Delete", `DELETE FROM news_feeds WHERE id = $1`, id)
}

func (repo *NewsFeedRepo) TouchCrawledAt(ctx context.Context, id int64, t time.Time) error {
	const query = `UPDATE news_feeds SET last_crawled_at = $1 WHERE id = $2`
	return execAffectingOne(ctx, repo.db, "TouchCrawledAt", query, t, id)
}
