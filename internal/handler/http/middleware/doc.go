// Package middleware holds the edge middlewares of the API server: CORS and
// per-client rate limiting, plus the client IP resolution they share.
package middleware
