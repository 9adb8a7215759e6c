package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/mcarbmont89/full-congreso-sub000/internal/config"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/requestid"
)

// CORS allows the configured admin and public front-end origins. A "*"
// entry allows any origin; credentials are then disabled as browsers
// require.
func CORS(cfg config.CORS) func(http.Handler) http.Handler {
	wildcard := false
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			wildcard = true
		}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestid.RequestIDHeader},
		ExposedHeaders:   []string{requestid.RequestIDHeader, "X-Trace-Id", "X-Total-Count", "Retry-After"},
		AllowCredentials: !wildcard,
		MaxAge:           cfg.MaxAge,
	})
}
