// Package news provides HTTP handlers for the news endpoints.
package news

import (
	"log/slog"
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
)

// Register mounts the news routes. Writes are guarded by the auth middleware
// wrapped around the API mux; reads hide drafts from anonymous callers.
func Register(mux *http.ServeMux, svc *newsUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /api/news", ListHandler(svc, paginationCfg, logger))
	mux.Handle("GET    /api/news/slug/{slug}", SlugHandler{Svc: svc})
	mux.Handle("GET    /api/news/{id}", GetHandler{Svc: svc})
	mux.Handle("POST   /api/news", crud.CreateHandler[entity.News, newsUC.Input]{Svc: svc})
	mux.Handle("PUT    /api/news/{id}", crud.UpdateHandler[entity.News, newsUC.Input]{Svc: svc})
	mux.Handle("DELETE /api/news/{id}", crud.DeleteHandler[entity.News, newsUC.Input]{Svc: svc})
}
