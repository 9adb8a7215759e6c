package repository

import (
	"context"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// NewsFilters narrows news listings. Nil fields are not applied.
type NewsFilters struct {
	Category  string
	Published *bool
	Featured  *bool
	// Keywords are AND-ed; each one matches title or excerpt.
	Keywords []string
}

type NewsRepository interface {
	// List returns news ordered by published_at DESC, created_at DESC.
	List(ctx context.Context, filters NewsFilters, offset, limit int) ([]*entity.News, error)
	Count(ctx context.Context, filters NewsFilters) (int64, error)
	// Get returns (nil, nil) if the row does not exist.
	Get(ctx context.Context, id int64) (*entity.News, error)
	GetBySlug(ctx context.Context, slug string) (*entity.News, error)
	Create(ctx context.Context, news *entity.News) error
	Update(ctx context.Context, news *entity.News) error
	Delete(ctx context.Context, id int64) error
	// ExistingSourceURLs reports which of urls are already stored, used by feed import.
	ExistingSourceURLs(ctx context.Context, urls []string) (map[string]bool, error)
}

type NewsFeedRepository interface {
	Get(ctx context.Context, id int64) (*entity.NewsFeed, error)
	List(ctx context.Context) ([]*entity.NewsFeed, error)
	ListActive(ctx context.Context) ([]*entity.NewsFeed, error)
	Create(ctx context.Context, feed *entity.NewsFeed) error
	Update(ctx context.Context, feed *entity.NewsFeed) error
	Delete(ctx context.Context, id int64) error
	TouchCrawledAt(ctx context.Context, id int64, t time.Time) error
}
