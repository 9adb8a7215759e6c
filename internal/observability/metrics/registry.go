package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sizeBuckets = prometheus.ExponentialBuckets(100, 10, 8)

// HTTP server. path is the route pattern, never the raw URL.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_size_bytes",
		Help:    "Declared request body size",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "Bytes written in response bodies",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_active_connections",
		Help: "Requests currently being served",
	})
)

// Content: table sizes, feed imports, uploads and stream transitions.
var (
	ContentItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cms_content_items",
		Help: "Rows per content table, refreshed by the worker",
	}, []string{"table"})

	// NewsImportedTotal result is inserted or duplicated.
	NewsImportedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_news_imported_total",
		Help: "Feed items handled by the news importer",
	}, []string{"feed_id", "result"})

	FeedImportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_feed_import_duration_seconds",
		Help:    "Time to fetch and store one news feed",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	}, []string{"feed_id"})

	FeedImportErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_feed_import_errors_total",
		Help: "News feed import failures by kind",
	}, []string{"feed_id", "error_type"})

	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_uploads_total",
		Help: "Upload attempts by folder and result",
	}, []string{"folder", "result"})

	// UploadSize tops out around 256MB.
	UploadSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_upload_size_bytes",
		Help:    "Size of stored uploads",
		Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
	}, []string{"folder"})

	StreamStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_stream_status_changes_total",
		Help: "Live stream transitions by new status",
	}, []string{"status"})

	HomepageSectionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_homepage_section_duration_seconds",
		Help:    "Time to load one homepage section",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"section", "result"})
)

// Database pool, sampled by the health check.
var (
	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_active",
		Help: "Connections in use",
	})
	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Idle connections in the pool",
	})
)

// RecordHTTPRequest records one served request. Zero sizes are skipped.
func RecordHTTPRequest(method, path, status string, took time.Duration, reqBytes, respBytes int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(took.Seconds())
	if reqBytes > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(reqBytes))
	}
	if respBytes > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(respBytes))
	}
}
