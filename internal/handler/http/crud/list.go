package crud

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
)

// PageFunc loads one page of rows for the request's filters.
type PageFunc[T any] func(r *http.Request, params pagination.Params) ([]*T, pagination.Metadata, error)

// PaginatedList serves {data, pagination} lists and records the pagination
// metrics under Resource.
type PaginatedList[T any] struct {
	Resource string
	Config   pagination.Config
	Logger   *slog.Logger
	Fetch    PageFunc[T]
	View     View[T]
}

func (h PaginatedList[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	logger := logging.WithRequestID(ctx, h.logger()).With(slog.String("resource", h.Resource))

	params, err := pagination.FromRequest(r, h.Config)
	if err != nil {
		logger.Warn("rejected list parameters", slog.String("query", r.URL.RawQuery))
		pagination.ObserveFailure(h.Resource, "validation", http.StatusBadRequest, params.Page)
		respond.DomainError(w, err)
		return
	}

	items, meta, err := h.Fetch(r, params)
	if err != nil {
		kind := "database"
		if errors.Is(err, entity.ErrValidationFailed) {
			kind = "validation"
		} else {
			logger.Error("list query failed",
				slog.Int("page", params.Page),
				slog.Int("limit", params.Limit),
				slog.String("error", respond.SanitizeError(err)))
		}
		pagination.ObserveFailure(h.Resource, kind, respond.StatusFor(err), params.Page)
		respond.DomainError(w, err)
		return
	}

	data := Map(items, h.View)
	elapsed := time.Since(start)
	pagination.ObserveList(h.Resource, params, meta.Total, elapsed)
	logger.Debug("list served",
		slog.Int("page", params.Page),
		slog.Int("limit", params.Limit),
		slog.Int("returned", len(data)),
		slog.Int64("total", meta.Total),
		slog.Duration("elapsed", elapsed))

	respond.JSON(w, http.StatusOK, pagination.NewResponse(data, meta))
}

func (h PaginatedList[T]) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// ListFunc loads every row matching the request's filters.
type ListFunc[T any] func(r *http.Request) ([]*T, error)

// List serves unpaginated lists as a JSON array.
type List[T any] struct {
	Fetch ListFunc[T]
	View  View[T]
}

func (h List[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.Fetch(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, Map(items, h.View))
}
