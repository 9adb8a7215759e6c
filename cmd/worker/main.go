package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/mcarbmont89/full-congreso-sub000/internal/config"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	pgRepo "github.com/mcarbmont89/full-congreso-sub000/internal/infra/adapter/persistence/postgres"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/db"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/fetcher"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/scraper"
	workerPkg "github.com/mcarbmont89/full-congreso-sub000/internal/infra/worker"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/metrics"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/circuitbreaker"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/retry"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
	feedUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/newsfeed"
)

const (
	jobImportNews     = "import-news"
	jobRefreshMetrics = "refresh-content-metrics"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewMetrics(prometheus.DefaultRegisterer)
	cfg := workerPkg.LoadConfig(logger, workerMetrics.Config)
	logger.Info("worker configuration loaded",
		slog.String("feed_cron_schedule", cfg.FeedCronSchedule),
		slog.String("metrics_cron_schedule", cfg.MetricsCronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("import_timeout", cfg.ImportTimeout),
		slog.Int("import_parallelism", cfg.ImportParallelism))

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go serveUntilDone(logger, "health", func() error { return healthServer.Start(ctx) })
	go serveUntilDone(logger, "metrics", func() error {
		return workerPkg.StartMetricsServer(ctx, fmt.Sprintf(":%d", cfg.MetricsPort), logger)
	})

	database, err := openDatabase(ctx)
	if err != nil {
		logger.Error("database unavailable", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	newsRepo := pgRepo.NewNewsRepo(breaker)
	importer := &feedUC.Importer{
		Feeds:       pgRepo.NewNewsFeedRepo(breaker),
		News:        newsRepo,
		Creator:     &newsUC.Service{Repo: newsRepo},
		Fetcher:     scraper.NewRSSFetcher(fetcher.NewClient(fetcher.LoadConfig(logger))),
		Parallelism: cfg.ImportParallelism,
	}
	stats := pgRepo.NewContentStatsRepo(breaker)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		// LoadConfig already validated the zone; tzdata may still be missing.
		logger.Error("timezone unavailable, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(cfg.FeedCronSchedule, func() {
		runImportJob(ctx, logger, importer, cfg.ImportTimeout, workerMetrics)
	}); err != nil {
		logger.Error("failed to schedule job", slog.String("job", jobImportNews), slog.Any("error", err))
		os.Exit(1)
	}
	if _, err := c.AddFunc(cfg.MetricsCronSchedule, func() {
		runRefreshMetricsJob(ctx, logger, stats, workerMetrics)
	}); err != nil {
		logger.Error("failed to schedule job", slog.String("job", jobRefreshMetrics), slog.Any("error", err))
		os.Exit(1)
	}

	// Gauges are empty until the first scheduled refresh otherwise.
	runRefreshMetricsJob(ctx, logger, stats, workerMetrics)

	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("feed_cron_schedule", cfg.FeedCronSchedule),
		slog.String("timezone", loc.String()))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	// Stop waits for running jobs; their contexts derive from ctx and are
	// already cancelled.
	select {
	case <-c.Stop().Done():
	case <-time.After(30 * time.Second):
		logger.Warn("running jobs did not finish in time")
	}
	logger.Info("worker stopped")
}

// openDatabase waits for the API to migrate the schema; the worker never
// migrates itself.
func openDatabase(ctx context.Context) (*sql.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	var database *sql.DB
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		d, err := db.Open(ctx, dsn)
		if err != nil {
			if dsn == "" {
				return err
			}
			return retry.Retryable(err)
		}
		database = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := db.WaitForSchema(ctx, database, retry.DBConfig()); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}

func serveUntilDone(logger *slog.Logger, name string, start func() error) {
	if err := start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(name+" server exited", slog.Any("error", err))
	}
}

func runImportJob(ctx context.Context, logger *slog.Logger, importer *feedUC.Importer, timeout time.Duration, m *workerPkg.Metrics) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	logger = logger.With(slog.String("job", jobImportNews))
	logger.Info("job started")

	var stats *feedUC.ImportStats
	err := m.Track(jobImportNews, func() error {
		var err error
		stats, err = importer.ImportAll(ctx)
		return err
	})
	if err != nil {
		logger.Error("job failed", slog.String("error", respond.SanitizeError(err)))
		return
	}
	m.FeedsProcessed.Add(float64(stats.Feeds))
	logger.Info("job completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int64("failed_feeds", stats.FailedFeed),
		slog.Int64("items", stats.Items),
		slog.Int64("inserted", stats.Inserted),
		slog.Int64("duplicated", stats.Duplicated),
		slog.Int64("skipped", stats.Skipped),
		slog.Duration("duration", stats.Duration))
}

func runRefreshMetricsJob(ctx context.Context, logger *slog.Logger, stats repository.ContentStatsRepository, m *workerPkg.Metrics) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	err := m.Track(jobRefreshMetrics, func() error {
		counts, err := stats.CountByTable(ctx)
		if err != nil {
			return err
		}
		metrics.UpdateContentCounts(counts)
		return nil
	})
	if err != nil {
		logger.Error("job failed", slog.String("job", jobRefreshMetrics), slog.String("error", respond.SanitizeError(err)))
		return
	}
	logger.Debug("content gauges refreshed")
}
