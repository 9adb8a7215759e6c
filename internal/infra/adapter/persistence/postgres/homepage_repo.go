package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

type HomepageConfigRepo struct {
	db DBTX
}

func NewHomepageConfigRepo(db DBTX) repository.HomepageConfigRepository {
	return &HomepageConfigRepo{db: db}
}

func (repo *HomepageConfigRepo) Get(ctx context.Context) (*entity.HomepageConfig, error) {
	const query = `
SELECT hero_title, hero_subtitle, hero_image_url, hero_video_url, featured_stream_id,
       show_news, show_streams, show_programs, show_radio, news_limit, updated_at
FROM homepage_config
WHERE id = $1`
	var c entity.HomepageConfig
	err := repo.db.QueryRowContext(ctx, query, entity.HomepageConfigID).Scan(
		&c.HeroTitle, &c.HeroSubtitle, &c.HeroImageURL, &c.HeroVideoURL, &c.FeaturedStreamID,
		&c.ShowNews, &c.ShowStreams, &c.ShowPrograms, &c.ShowRadio, &c.NewsLimit, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &c, nil
}

func (repo *HomepageConfigRepo) Upsert(ctx context.Context, c *entity.HomepageConfig) error {
	const query = `
INSERT INTO homepage_config (id, hero_title, hero_subtitle, hero_image_url, hero_video_url,
                             featured_stream_id, show_news, show_streams, show_programs, show_radio,
                             news_limit, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
ON CONFLICT (id) DO UPDATE SET
    hero_title = EXCLUDED.hero_title,
    hero_subtitle = EXCLUDED.hero_subtitle,
    hero_image_url = EXCLUDED.hero_image_url,
    hero_video_url = EXCLUDED.hero_video_url,
    featured_stream_id = EXCLUDED.featured_stream_id,
    show_news = EXCLUDED.show_news,
    show_streams = EXCLUDED.show_streams,
    show_programs = EXCLUDED.show_programs,
    show_radio = EXCLUDED.show_radio,
    news_limit = EXCLUDED.news_limit,
    updated_at = NOW()
RETURNING updated_at`
	err := repo.db.QueryRowContext(ctx, query, entity.HomepageConfigID,
		c.HeroTitle, c.HeroSubtitle, c.HeroImageURL, c.HeroVideoURL, c.FeaturedStreamID,
		c.ShowNews, c.ShowStreams, c.ShowPrograms, c.ShowRadio, c.NewsLimit,
	).Scan(&c.UpdatedAt)
	return mapError("Upsert", err)
}
