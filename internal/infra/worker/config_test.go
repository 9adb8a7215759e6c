package worker

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestDefaultConfig_IsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad feed cron", func(c *Config) { c.FeedCronSchedule = "often" }, "feed cron schedule"},
		{"bad metrics cron", func(c *Config) { c.MetricsCronSchedule = "" }, "metrics cron schedule"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "timezone"},
		{"timeout too short", func(c *Config) { c.ImportTimeout = time.Second }, "import timeout"},
		{"parallelism zero", func(c *Config) { c.ImportParallelism = 0 }, "import parallelism"},
		{"privileged port", func(c *Config) { c.HealthPort = 80 }, "health port"},
		{"same ports", func(c *Config) { c.MetricsPort = c.HealthPort }, "must differ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_ReportsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FeedCronSchedule = "nope"
	cfg.ImportParallelism = 99
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed cron schedule")
	assert.Contains(t, err.Error(), "import parallelism")
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("FEED_CRON_SCHEDULE", "@every 15m")
	t.Setenv("METRICS_CRON_SCHEDULE", "*/1 * * * *")
	t.Setenv("WORKER_TIMEZONE", "UTC")
	t.Setenv("IMPORT_TIMEOUT", "5m")
	t.Setenv("IMPORT_PARALLELISM", "8")
	t.Setenv("WORKER_HEALTH_PORT", "8091")
	t.Setenv("METRICS_PORT", "8090")

	m := NewMetrics(prometheus.NewRegistry())
	cfg := LoadConfig(discard(), m.Config)

	assert.Equal(t, Config{
		FeedCronSchedule:    "@every 15m",
		MetricsCronSchedule: "*/1 * * * *",
		Timezone:            "UTC",
		ImportTimeout:       5 * time.Minute,
		ImportParallelism:   8,
		HealthPort:          8091,
		MetricsPort:         8090,
	}, cfg)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Config.FallbackActive))
}

func TestLoadConfig_FallsBackPerField(t *testing.T) {
	t.Setenv("FEED_CRON_SCHEDULE", "every half hour")
	t.Setenv("WORKER_TIMEZONE", "America/Mexico_City")
	t.Setenv("IMPORT_PARALLELISM", "100")

	m := NewMetrics(prometheus.NewRegistry())
	cfg := LoadConfig(discard(), m.Config)

	def := DefaultConfig()
	assert.Equal(t, def.FeedCronSchedule, cfg.FeedCronSchedule)
	assert.Equal(t, "America/Mexico_City", cfg.Timezone)
	assert.Equal(t, def.ImportParallelism, cfg.ImportParallelism)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Config.FallbackActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Config.FallbacksTotal.WithLabelValues("feed_cron_schedule")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Config.FallbacksTotal.WithLabelValues("import_parallelism")))
}

func TestLoadConfig_PortClash(t *testing.T) {
	t.Setenv("WORKER_HEALTH_PORT", "9500")
	t.Setenv("METRICS_PORT", "9500")

	cfg := LoadConfig(discard(), nil)

	assert.Equal(t, DefaultConfig().HealthPort, cfg.HealthPort)
	assert.Equal(t, DefaultConfig().MetricsPort, cfg.MetricsPort)
}
