// Package pathutil parses path parameters and normalizes request paths for metric labels.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 path parameter.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PathID reads the {id} wildcard of the matched route.
func PathID(r *http.Request) (int64, error) {
	return ParseID(r.PathValue("id"))
}

// QueryID parses an optional positive integer query parameter. A missing
// parameter yields nil; a malformed one a *entity.ValidationError.
func QueryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, &entity.ValidationError{Field: name, Message: "invalid " + name}
	}
	return &id, nil
}

// QueryBool parses an optional boolean query parameter ("true", "1", "false", "0").
func QueryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &entity.ValidationError{Field: name, Message: name + " must be true or false"}
	}
	return &v, nil
}
