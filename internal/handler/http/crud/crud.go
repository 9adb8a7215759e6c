// Package crud provides the get/create/update/delete handlers shared by every
// content resource. List handlers live with each resource because their
// filters differ.
package crud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
)

// Store is the per-row half of a content use-case service.
type Store[T, In any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int64, in In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// View converts a stored row into its response body. Nil means the row itself.
type View[T any] func(*T) any

func (v View[T]) render(item *T) any {
	if v == nil {
		return item
	}
	return v(item)
}

// Decode reads a JSON request body into dst.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// BadBody writes the error returned by Decode.
func BadBody(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respond.SafeError(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
		return
	}
	respond.SafeError(w, http.StatusBadRequest, err)
}

// Items returns xs, or an empty slice when xs is nil so lists encode as [].
func Items[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

// Map renders every row of xs through v.
func Map[T any](xs []*T, v View[T]) []any {
	out := make([]any, 0, len(xs))
	for _, x := range xs {
		out = append(out, v.render(x))
	}
	return out
}

type GetHandler[T, In any] struct {
	Svc  Store[T, In]
	View View[T]
}

func (h GetHandler[T, In]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	item, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.View.render(item))
}

type CreateHandler[T, In any] struct {
	Svc  Store[T, In]
	View View[T]
}

func (h CreateHandler[T, In]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in In
	if err := Decode(r, &in); err != nil {
		BadBody(w, err)
		return
	}
	item, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, h.View.render(item))
}

// UpdateHandler replaces every field of the row.
type UpdateHandler[T, In any] struct {
	Svc  Store[T, In]
	View View[T]
}

func (h UpdateHandler[T, In]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	var in In
	if err := Decode(r, &in); err != nil {
		BadBody(w, err)
		return
	}
	item, err := h.Svc.Update(r.Context(), id, in)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, h.View.render(item))
}

type DeleteHandler[T, In any] struct {
	Svc Store[T, In]
}

func (h DeleteHandler[T, In]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RegisterItem mounts GET/PUT/DELETE base/{id} and POST base.
func RegisterItem[T, In any](mux *http.ServeMux, base string, svc Store[T, In], view View[T]) {
	mux.Handle("GET    "+base+"/{id}", GetHandler[T, In]{Svc: svc, View: view})
	mux.Handle("POST   "+base, CreateHandler[T, In]{Svc: svc, View: view})
	mux.Handle("PUT    "+base+"/{id}", UpdateHandler[T, In]{Svc: svc, View: view})
	mux.Handle("DELETE "+base+"/{id}", DeleteHandler[T, In]{Svc: svc})
}
