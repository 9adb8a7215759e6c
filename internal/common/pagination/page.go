// Package pagination reads ?page=&limit= from list requests and shapes the
// {data, pagination} envelope returned by paginated endpoints.
package pagination

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/pkg/config"
)

// Config bounds the page size. Page numbers always start at 1.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

func DefaultConfig() Config {
	return Config{DefaultLimit: 20, MaxLimit: 100}
}

// LoadConfig reads PAGINATION_DEFAULT_LIMIT and PAGINATION_MAX_LIMIT. Both
// may only lower the defaults' cap of 100, which services enforce on their
// own. Bad values fall back and are logged; a default above the max is
// clamped to it.
func LoadConfig(logger *slog.Logger) Config {
	def := DefaultConfig()

	maxLimit := config.LoadInt("PAGINATION_MAX_LIMIT", def.MaxLimit, config.IntRange(1, def.MaxLimit))
	defLimit := config.LoadInt("PAGINATION_DEFAULT_LIMIT", def.DefaultLimit, config.IntRange(1, def.MaxLimit))
	for _, r := range []config.Result[int]{maxLimit, defLimit} {
		if r.FallbackApplied {
			logger.Warn("pagination setting fell back to default", slog.String("warning", r.Warning))
		}
	}

	cfg := Config{DefaultLimit: defLimit.Value, MaxLimit: maxLimit.Value}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	return cfg
}

// MaxPage is the highest page number accepted. Offsets of every page up to
// it fit in an int for any limit up to the max.
const MaxPage = math.MaxInt32

// Params is a 1-based page and its size.
type Params struct {
	Page  int
	Limit int
}

// FromRequest parses page and limit from the query string. Absent values take
// the defaults; present but malformed values are a validation error.
func FromRequest(r *http.Request, cfg Config) (Params, error) {
	p := Params{Page: 1, Limit: cfg.DefaultLimit}
	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxPage {
			return p, &entity.ValidationError{Field: "page", Message: "invalid page: must be between 1 and " + strconv.Itoa(MaxPage)}
		}
		p.Page = n
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > cfg.MaxLimit {
			return p, &entity.ValidationError{
				Field:   "limit",
				Message: "invalid limit: must be between 1 and " + strconv.Itoa(cfg.MaxLimit),
			}
		}
		p.Limit = n
	}
	if p.Limit > 0 && p.Page-1 > math.MaxInt/p.Limit {
		return p, &entity.ValidationError{Field: "page", Message: "invalid page: offset out of range"}
	}
	return p, nil
}

// Normalize replaces out-of-range values so services can be called without
// going through FromRequest.
func (p Params) Normalize(cfg Config) Params {
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Limit < 1:
		p.Limit = cfg.DefaultLimit
	case p.Limit > cfg.MaxLimit:
		p.Limit = cfg.MaxLimit
	}
	if p.Limit > 0 && p.Page-1 > math.MaxInt/p.Limit {
		p.Page = math.MaxInt/p.Limit + 1
	}
	return p
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewMetadata describes page p of a result set with total rows. An empty set
// still reports one page.
func NewMetadata(p Params, total int64) Metadata {
	pages := 1
	if total > 0 && p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Metadata{Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}

// Response is the JSON envelope of a paginated list.
type Response[T any] struct {
	Data       []T      `json:"data"`
	Pagination Metadata `json:"pagination"`
}

func NewResponse[T any](data []T, meta Metadata) Response[T] {
	if data == nil {
		data = []T{}
	}
	return Response[T]{Data: data, Pagination: meta}
}
