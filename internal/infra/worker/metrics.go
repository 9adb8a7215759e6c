package worker

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/config"
)

// Metrics tracks cron job executions, labelled by job name.
type Metrics struct {
	Config *config.ConfigMetrics

	JobRuns        *prometheus.CounterVec
	JobDuration    *prometheus.HistogramVec
	JobLastSuccess *prometheus.GaugeVec
	FeedsProcessed prometheus.Counter
}

// NewMetrics registers the worker collectors with reg (nil skips registration).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Config: config.NewConfigMetrics("worker", reg),
		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Cron job runs by job and status (started, success, failure)",
		}, []string{"job", "status"}),
		JobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron job runs",
			Buckets: []float64{0.1, 1, 5, 30, 60, 300, 900},
		}, []string{"job"}),
		JobLastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful run per job",
		}, []string{"job"}),
		FeedsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_feeds_processed_total",
			Help: "Feeds processed by import-news runs",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.JobRuns, m.JobDuration, m.JobLastSuccess, m.FeedsProcessed)
	}
	return m
}

// Track records a run of job: it counts the start, then the outcome and
// duration of fn.
func (m *Metrics) Track(job string, fn func() error) error {
	start := time.Now()
	m.JobRuns.WithLabelValues(job, "started").Inc()
	err := fn()
	m.JobDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
	if err != nil {
		m.JobRuns.WithLabelValues(job, "failure").Inc()
		return err
	}
	m.JobRuns.WithLabelValues(job, "success").Inc()
	m.JobLastSuccess.WithLabelValues(job).SetToCurrentTime()
	return nil
}

// StartMetricsServer serves promhttp on addr until ctx is cancelled.
func StartMetricsServer(ctx context.Context, addr string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	return serve(ctx, logger, "metrics", &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	})
}
