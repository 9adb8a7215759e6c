// Package worker holds the background worker's configuration, its probe
// server and its job metrics.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/config"
)

// Config controls the worker's schedules and servers.
type Config struct {
	// FeedCronSchedule runs the import-news job. Five-field cron or a
	// descriptor such as "@every 30m".
	FeedCronSchedule string
	// MetricsCronSchedule runs the refresh-content-metrics job.
	MetricsCronSchedule string
	// Timezone is the IANA zone both schedules are evaluated in.
	Timezone string
	// ImportTimeout bounds one import-news pass.
	ImportTimeout time.Duration
	// ImportParallelism bounds how many feeds are fetched at once.
	ImportParallelism int
	HealthPort        int
	MetricsPort       int
}

// DefaultConfig imports every 30 minutes and refreshes gauges every 5.
func DefaultConfig() Config {
	return Config{
		FeedCronSchedule:    "*/30 * * * *",
		MetricsCronSchedule: "*/5 * * * *",
		Timezone:            "America/Mexico_City",
		ImportTimeout:       10 * time.Minute,
		ImportParallelism:   4,
		HealthPort:          9091,
		MetricsPort:         9090,
	}
}

const (
	minImportTimeout = time.Minute
	maxImportTimeout = 2 * time.Hour
	maxParallelism   = 16
)

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.FeedCronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("feed cron schedule: %w", err))
	}
	if err := config.ValidateCronSchedule(c.MetricsCronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("metrics cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.ImportTimeout, minImportTimeout, maxImportTimeout); err != nil {
		errs = append(errs, fmt.Errorf("import timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.ImportParallelism, 1, maxParallelism); err != nil {
		errs = append(errs, fmt.Errorf("import parallelism: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}
	if c.HealthPort == c.MetricsPort {
		errs = append(errs, errors.New("health port and metrics port must differ"))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the worker settings from the environment. It never fails:
// each invalid value is replaced by its default, logged and counted in
// metrics. A nil metrics skips the counting.
func LoadConfig(logger *slog.Logger, metrics *config.ConfigMetrics) Config {
	cfg := DefaultConfig()
	var fallbacks []string

	note := func(field string, fallback bool, warning string) {
		if !fallback {
			return
		}
		fallbacks = append(fallbacks, field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	s := config.LoadString("FEED_CRON_SCHEDULE", cfg.FeedCronSchedule, config.ValidateCronSchedule)
	cfg.FeedCronSchedule = s.Value
	note("feed_cron_schedule", s.FallbackApplied, s.Warning)

	s = config.LoadString("METRICS_CRON_SCHEDULE", cfg.MetricsCronSchedule, config.ValidateCronSchedule)
	cfg.MetricsCronSchedule = s.Value
	note("metrics_cron_schedule", s.FallbackApplied, s.Warning)

	s = config.LoadString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = s.Value
	note("timezone", s.FallbackApplied, s.Warning)

	d := config.LoadDuration("IMPORT_TIMEOUT", cfg.ImportTimeout, config.DurationRange(minImportTimeout, maxImportTimeout))
	cfg.ImportTimeout = d.Value
	note("import_timeout", d.FallbackApplied, d.Warning)

	n := config.LoadInt("IMPORT_PARALLELISM", cfg.ImportParallelism, config.IntRange(1, maxParallelism))
	cfg.ImportParallelism = n.Value
	note("import_parallelism", n.FallbackApplied, n.Warning)

	n = config.LoadInt("WORKER_HEALTH_PORT", cfg.HealthPort, config.IntRange(1024, 65535))
	cfg.HealthPort = n.Value
	note("health_port", n.FallbackApplied, n.Warning)

	n = config.LoadInt("METRICS_PORT", cfg.MetricsPort, config.IntRange(1024, 65535))
	cfg.MetricsPort = n.Value
	note("metrics_port", n.FallbackApplied, n.Warning)

	if cfg.HealthPort == cfg.MetricsPort {
		def := DefaultConfig()
		cfg.HealthPort, cfg.MetricsPort = def.HealthPort, def.MetricsPort
		note("ports", true, "WORKER_HEALTH_PORT equals METRICS_PORT, falling back to defaults")
	}

	if metrics != nil {
		metrics.RecordLoad(fallbacks)
	}
	return cfg
}
