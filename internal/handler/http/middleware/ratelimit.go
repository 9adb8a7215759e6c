package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
)

var rateLimitDenied = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cms_rate_limit_denied_total",
		Help: "Requests rejected by a rate limiter",
	},
	[]string{"limiter"},
)

// KeyFunc turns an IPExtractor into an httprate key function. A request
// whose address cannot be parsed is keyed by its raw RemoteAddr.
func KeyFunc(ex IPExtractor) httprate.KeyFunc {
	return func(r *http.Request) (string, error) {
		ip, err := ex.ExtractIP(r)
		if err != nil {
			return r.RemoteAddr, nil
		}
		return ip, nil
	}
}

// RateLimit allows limit requests per window and client key. name labels
// the denial metric and the log line. Limits below one disable the limiter.
func RateLimit(name string, limit int, window time.Duration, key httprate.KeyFunc) func(http.Handler) http.Handler {
	if limit < 1 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			rateLimitDenied.WithLabelValues(name).Inc()
			slog.Default().Warn("rate limit exceeded",
				slog.String("limiter", name),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		}),
	)
}

// Only applies mw to requests matching method and path exactly and passes
// everything else straight to the next handler.
func Only(method, path string, mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == method && r.URL.Path == path {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
