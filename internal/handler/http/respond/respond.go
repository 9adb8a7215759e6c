// Package respond provides utilities for sending HTTP responses in JSON format.
// It includes error handling with sanitization to prevent leaking sensitive information.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// safeFragments are the message fragments that mark an error as safe to show to clients.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
	"too large",
	"not allowed",
	"unauthorized",
	"forbidden",
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// SafeError sanitizes error messages before returning them to users.
// 5xx errors are always returned as "internal server error" and logged. 4xx
// errors are returned as-is when they look like validation messages, and as
// the status text otherwise.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 {
		if !isSafe(msg) {
			slog.Default().Warn("client error hidden",
				slog.Int("code", code),
				slog.Any("error", SanitizeError(err)))
			msg = strings.ToLower(http.StatusText(code))
		}
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, safe := range safeFragments {
		if strings.Contains(lower, safe) {
			return true
		}
	}
	return false
}

// StatusFor maps a use-case error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidReference):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// DomainError writes err with the status StatusFor picks.
func DomainError(w http.ResponseWriter, err error) {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		// clients get "title is required", not the wrapped field prefix
		JSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
		return
	}
	SafeError(w, StatusFor(err), err)
}
