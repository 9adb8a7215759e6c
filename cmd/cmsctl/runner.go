package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/mcarbmont89/full-congreso-sub000/internal/config"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	pgRepo "github.com/mcarbmont89/full-congreso-sub000/internal/infra/adapter/persistence/postgres"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/db"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/fetcher"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/scraper"
	homeUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/homepage"
	streamUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/livestream"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
	feedUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/newsfeed"
)

type (
	streamStatusSetter interface {
		UpdateStatus(ctx context.Context, id int64, status string) (*entity.LiveStream, error)
	}
	newsImporter interface {
		ImportAll(ctx context.Context) (*feedUC.ImportStats, error)
		ImportFeed(ctx context.Context, id int64) (*feedUC.ImportStats, error)
	}
	homepageConfigGetter interface {
		Get(ctx context.Context) (*entity.HomepageConfig, error)
	}
)

// Deps are the services commands act on. Connect builds them from the
// database unless they were set already.
type Deps struct {
	Migrate  func(down bool) error
	Streams  streamStatusSetter
	Importer newsImporter
	Homepage homepageConfigGetter
}

type Runner struct {
	Out    io.Writer
	Logger *slog.Logger
	Deps   *Deps

	db *sql.DB
}

// connect opens the database and wires Deps. Stream status changes made
// here do not send webhook notifications.
func (r *Runner) connect(ctx context.Context, dsn string) error {
	database, err := db.Open(ctx, dsn)
	if err != nil {
		return err
	}
	r.db = database

	newsRepo := pgRepo.NewNewsRepo(database)
	streamRepo := pgRepo.NewLiveStreamRepo(database)
	r.Deps = &Deps{
		Migrate: func(down bool) error {
			if down {
				return db.MigrateDown(database)
			}
			return db.MigrateUp(database)
		},
		Streams: &streamUC.Service{Repo: streamRepo},
		Importer: &feedUC.Importer{
			Feeds:   pgRepo.NewNewsFeedRepo(database),
			News:    newsRepo,
			Creator: &newsUC.Service{Repo: newsRepo},
			Fetcher: scraper.NewRSSFetcher(fetcher.NewClient(fetcher.LoadConfig(r.Logger))),
		},
		Homepage: &homeUC.ConfigService{
			Repo:     pgRepo.NewHomepageConfigRepo(database),
			Streams:  streamRepo,
			Defaults: config.DefaultHomepageConfig,
		},
	}
	return nil
}

func (r *Runner) Close(context.Context, *cli.Command) error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// deps connects on first use so that help output needs no database.
func (r *Runner) deps(ctx context.Context, cmd *cli.Command) (*Deps, error) {
	if r.Deps != nil {
		return r.Deps, nil
	}
	dsn := cmd.String("database-url")
	if dsn == "" {
		return nil, errors.New("database is not configured: set DATABASE_URL or --database-url")
	}
	if err := r.connect(ctx, dsn); err != nil {
		return nil, err
	}
	return r.Deps, nil
}

func (r *Runner) Migrate(ctx context.Context, cmd *cli.Command) error {
	d, err := r.deps(ctx, cmd)
	if err != nil {
		return err
	}
	down := cmd.Bool("down")
	if err := d.Migrate(down); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if down {
		r.Logger.Warn("all tables dropped")
	} else {
		r.Logger.Info("migrations applied")
	}
	return nil
}

func (r *Runner) StreamStatus(ctx context.Context, cmd *cli.Command) error {
	d, err := r.deps(ctx, cmd)
	if err != nil {
		return err
	}
	stream, err := d.Streams.UpdateStatus(ctx, cmd.Int64("id"), cmd.String("status"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.Out, "stream %d %q is now %s\n", stream.ID, stream.Title, stream.Status)
	return err
}

func (r *Runner) ImportNews(ctx context.Context, cmd *cli.Command) error {
	d, err := r.deps(ctx, cmd)
	if err != nil {
		return err
	}
	var stats *feedUC.ImportStats
	if id := cmd.Int64("feed-id"); id > 0 {
		stats, err = d.Importer.ImportFeed(ctx, id)
	} else {
		stats, err = d.Importer.ImportAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("import news: %w", err)
	}
	_, err = fmt.Fprintf(r.Out, "feeds=%d failed=%d items=%d inserted=%d duplicated=%d skipped=%d duration=%s\n",
		stats.Feeds, stats.FailedFeed, stats.Items, stats.Inserted, stats.Duplicated, stats.Skipped, stats.Duration)
	return err
}

func (r *Runner) HomepageConfigShow(ctx context.Context, cmd *cli.Command) error {
	d, err := r.deps(ctx, cmd)
	if err != nil {
		return err
	}
	cfg, err := d.Homepage.Get(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(r.Out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode homepage config: %w", err)
	}
	return enc.Close()
}
