package homepage

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/metrics"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
)

const featuredNewsLimit = 3

// NewsReader is the part of the news use case the homepage needs.
type NewsReader interface {
	Latest(ctx context.Context, limit int, featuredOnly bool) ([]*entity.News, error)
}

// Homepage is everything the public homepage renders.
type Homepage struct {
	Config         *entity.HomepageConfig
	LatestNews     []*entity.News
	FeaturedNews   []*entity.News
	LiveStreams    []*entity.LiveStream
	FeaturedStream *entity.LiveStream
	Programs       []*entity.Program
	RadioPrograms  []*entity.RadioProgram
}

type Aggregator struct {
	Config        *ConfigService
	News          NewsReader
	Streams       repository.LiveStreamRepository
	Programs      repository.ProgramRepository
	RadioPrograms repository.RadioProgramRepository
	Logger        *slog.Logger
}

// Build loads the configuration and then every enabled section in parallel.
// A failing section is logged and left empty; only a cancelled context is
// returned as an error.
func (a *Aggregator) Build(ctx context.Context) (*Homepage, error) {
	cfg, err := a.Config.Get(ctx)
	if err != nil {
		a.logger().WarnContext(ctx, "homepage config unavailable, using defaults", slog.Any("error", err))
		if cfg, err = a.Config.defaults(); err != nil {
			return nil, err
		}
	}

	page := &Homepage{
		Config:        cfg,
		LatestNews:    []*entity.News{},
		FeaturedNews:  []*entity.News{},
		LiveStreams:   []*entity.LiveStream{},
		Programs:      []*entity.Program{},
		RadioPrograms: []*entity.RadioProgram{},
	}

	// Each goroutine owns one field of page; errors never cancel siblings.
	var g errgroup.Group
	if cfg.ShowNews {
		g.Go(func() error {
			load(ctx, a.logger(), "latest_news", &page.LatestNews, func() ([]*entity.News, error) {
				return a.News.Latest(ctx, cfg.NewsLimit, false)
			})
			return nil
		})
		g.Go(func() error {
			load(ctx, a.logger(), "featured_news", &page.FeaturedNews, func() ([]*entity.News, error) {
				return a.News.Latest(ctx, featuredNewsLimit, true)
			})
			return nil
		})
	}
	if cfg.ShowStreams {
		g.Go(func() error {
			load(ctx, a.logger(), "live_streams", &page.LiveStreams, func() ([]*entity.LiveStream, error) {
				return a.Streams.List(ctx, repository.LiveStreamFilters{Statuses: entity.PublicStreamStatuses()})
			})
			return nil
		})
	}
	if cfg.FeaturedStreamID != nil {
		g.Go(func() error {
			start := time.Now()
			stream, err := a.Streams.Get(ctx, *cfg.FeaturedStreamID)
			metrics.ObserveHomepageSection("featured_stream", time.Since(start), err)
			if err != nil {
				a.logger().WarnContext(ctx, "homepage section failed", slog.String("section", "featured_stream"), slog.Any("error", err))
				return nil
			}
			page.FeaturedStream = stream
			return nil
		})
	}
	if cfg.ShowPrograms {
		g.Go(func() error {
			load(ctx, a.logger(), "programs", &page.Programs, func() ([]*entity.Program, error) {
				return a.Programs.List(ctx, true)
			})
			return nil
		})
	}
	if cfg.ShowRadio {
		g.Go(func() error {
			load(ctx, a.logger(), "radio_programs", &page.RadioPrograms, func() ([]*entity.RadioProgram, error) {
				return a.RadioPrograms.List(ctx, repository.RadioProgramFilters{ActiveOnly: true})
			})
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return page, nil
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func load[T any](ctx context.Context, logger *slog.Logger, section string, dst *[]T, fetch func() ([]T, error)) {
	start := time.Now()
	items, err := fetch()
	metrics.ObserveHomepageSection(section, time.Since(start), err)
	if err != nil {
		logger.WarnContext(ctx, "homepage section failed", slog.String("section", section), slog.Any("error", err))
		return
	}
	if items != nil {
		*dst = items
	}
}
