package pagination

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts list requests by resource, status code and a
	// coarse page bucket so deep paging shows up without label explosion.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_pagination_requests_total",
		Help: "Paginated list requests",
	}, []string{"resource", "status", "page_range"})

	DurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_pagination_duration_seconds",
		Help:    "Time spent serving a paginated list",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	}, []string{"resource"})

	TotalCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "cms_pagination_total_count",
		Help: "Rows matched by the last paginated list of each resource",
	}, []string{"resource"})

	// ErrorsTotal is labelled by kind: validation or database.
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_pagination_errors_total",
		Help: "Paginated list failures",
	}, []string{"resource", "kind"})
)

// ObserveList records a served page of resource.
func ObserveList(resource string, p Params, total int64, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(resource, "200", pageBucket(p.Page)).Inc()
	DurationSeconds.WithLabelValues(resource).Observe(elapsed.Seconds())
	TotalCount.WithLabelValues(resource).Set(float64(total))
}

// ObserveFailure records a list request of resource that ended with status.
func ObserveFailure(resource, kind string, status, page int) {
	ErrorsTotal.WithLabelValues(resource, kind).Inc()
	RequestsTotal.WithLabelValues(resource, strconv.Itoa(status), pageBucket(page)).Inc()
}

func pageBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
