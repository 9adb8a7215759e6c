package http

import (
	"context"
	"net/http"
	"time"
)

// Timeout bounds the request context with d. Handlers and repositories
// observe the deadline through ctx; a use-case error wrapping
// context.DeadlineExceeded is reported as 504 by respond.DomainError.
//
// Paths under one of the exempt prefixes keep the parent context (uploads
// stream large bodies over slow links). A non-positive d disables the limit.
func Timeout(d time.Duration, exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasAnyPrefix(r.URL.Path, exempt) {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
