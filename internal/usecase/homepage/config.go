// Package homepage provides the homepage configuration use case and the
// aggregated payload the public homepage renders from.
package homepage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/validation"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

// ConfigInput is the PUT body. Every field is replaced.
type ConfigInput struct {
	HeroTitle        string `json:"hero_title" validate:"max=200"`
	HeroSubtitle     string `json:"hero_subtitle" validate:"max=300"`
	HeroImageURL     string `json:"hero_image_url"`
	HeroVideoURL     string `json:"hero_video_url"`
	FeaturedStreamID *int64 `json:"featured_stream_id"`
	ShowNews         bool   `json:"show_news"`
	ShowStreams      bool   `json:"show_streams"`
	ShowPrograms     bool   `json:"show_programs"`
	ShowRadio        bool   `json:"show_radio"`
	NewsLimit        int    `json:"news_limit" validate:"gte=1,lte=24"`
}

type ConfigService struct {
	Repo    repository.HomepageConfigRepository
	Streams repository.LiveStreamRepository
	// Defaults returns the configuration served before the row exists.
	Defaults func() (*entity.HomepageConfig, error)
}

// Get returns the stored configuration, or the defaults when none was saved.
func (s *ConfigService) Get(ctx context.Context) (*entity.HomepageConfig, error) {
	cfg, err := s.Repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get homepage config: %w", err)
	}
	if cfg != nil {
		return cfg, nil
	}
	return s.defaults()
}

func (s *ConfigService) defaults() (*entity.HomepageConfig, error) {
	if s.Defaults == nil {
		return &entity.HomepageConfig{ShowNews: true, ShowStreams: true, ShowPrograms: true, ShowRadio: true, NewsLimit: 6}, nil
	}
	cfg, err := s.Defaults()
	if err != nil {
		return nil, fmt.Errorf("homepage defaults: %w", err)
	}
	return cfg, nil
}

// Update validates in and upserts the configuration row.
func (s *ConfigService) Update(ctx context.Context, in ConfigInput) (*entity.HomepageConfig, error) {
	in.HeroTitle = strings.TrimSpace(in.HeroTitle)
	in.HeroSubtitle = strings.TrimSpace(in.HeroSubtitle)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := entity.ValidateMediaURL("hero_image_url", in.HeroImageURL); err != nil {
		return nil, err
	}
	if err := entity.ValidateMediaURL("hero_video_url", in.HeroVideoURL); err != nil {
		return nil, err
	}
	if in.FeaturedStreamID != nil {
		stream, err := s.Streams.Get(ctx, *in.FeaturedStreamID)
		if err != nil {
			return nil, fmt.Errorf("check featured stream: %w", err)
		}
		if stream == nil {
			return nil, &entity.ValidationError{Field: "featured_stream_id", Message: "invalid featured_stream_id"}
		}
	}

	cfg := &entity.HomepageConfig{
		HeroTitle:        in.HeroTitle,
		HeroSubtitle:     in.HeroSubtitle,
		HeroImageURL:     strings.TrimSpace(in.HeroImageURL),
		HeroVideoURL:     strings.TrimSpace(in.HeroVideoURL),
		FeaturedStreamID: in.FeaturedStreamID,
		ShowNews:         in.ShowNews,
		ShowStreams:      in.ShowStreams,
		ShowPrograms:     in.ShowPrograms,
		ShowRadio:        in.ShowRadio,
		NewsLimit:        in.NewsLimit,
		UpdatedAt:        time.Now(),
	}
	if err := s.Repo.Upsert(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save homepage config: %w", err)
	}
	return cfg, nil
}
