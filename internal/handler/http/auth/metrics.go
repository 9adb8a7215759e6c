package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_auth_requests_total",
		Help: "POST /auth/token outcomes by role",
	}, []string{"role", "result"})

	loginSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_auth_duration_seconds",
		Help:    "POST /auth/token latency by role",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"role"})

	authzSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cms_authz_check_duration_seconds",
		Help:    "Bearer token validation plus role check",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
	})

	// authzDenied reason is token (401) or role (403).
	authzDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_authz_denied_total",
		Help: "Protected requests rejected by the authorization middleware",
	}, []string{"reason", "role", "method"})
)

func observeLogin(role string, err error, took time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	if role == "" {
		role = "unknown"
	}
	loginsTotal.WithLabelValues(role, result).Inc()
	loginSeconds.WithLabelValues(role).Observe(took.Seconds())
}

func observeDenied(reason, role, method string) {
	if role == "" {
		role = "unknown"
	}
	authzDenied.WithLabelValues(reason, role, method).Inc()
}
