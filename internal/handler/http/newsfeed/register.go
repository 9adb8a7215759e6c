// Package newsfeed provides the admin endpoints for the RSS/Atom feeds the
// worker imports news from.
package newsfeed

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	feedUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/newsfeed"
)

// Register mounts /api/news-feeds. Every route requires the admin role; the
// check lives in the auth middleware.
func Register(mux *http.ServeMux, svc *feedUC.Service) {
	mux.Handle("GET    /api/news-feeds", ListHandler(svc))
	crud.RegisterItem[entity.NewsFeed, feedUC.Input](mux, "/api/news-feeds", svc, nil)
}

// ListHandler serves GET /api/news-feeds.
//
// @Summary      List news feeds
// @Tags         news-feeds
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} entity.NewsFeed
// @Failure      401 {string} string "Unauthorized"
// @Failure      403 {string} string "Forbidden"
// @Router       /api/news-feeds [get]
func ListHandler(svc *feedUC.Service) http.Handler {
	return crud.List[entity.NewsFeed]{
		Fetch: func(r *http.Request) ([]*entity.NewsFeed, error) {
			return svc.List(r.Context())
		},
	}
}
