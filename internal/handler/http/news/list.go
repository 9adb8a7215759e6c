package news

import (
	"log/slog"
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
)

// ListHandler serves GET /api/news.
//
// @Summary      List news
// @Description  Paginated news, newest first. Filters combine with AND.
// @Tags         news
// @Produce      json
// @Param        category   query  string  false  "Category"
// @Param        published  query  bool    false  "Only published (true) or drafts (false). Ignored without a token: anonymous callers get published news only"
// @Param        featured   query  bool    false  "Only featured"
// @Param        q          query  string  false  "Keywords matched against title, excerpt and content"
// @Param        page       query  int     false  "Page number (1-based)" default(1) minimum(1)
// @Param        limit      query  int     false  "Items per page" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[entity.News]
// @Failure      400 {string} string "Invalid query parameters"
// @Failure      500 {string} string "Internal server error"
// @Router       /api/news [get]
func ListHandler(svc *newsUC.Service, cfg pagination.Config, logger *slog.Logger) http.Handler {
	return crud.PaginatedList[entity.News]{
		Resource: "news",
		Config:   cfg,
		Logger:   logger,
		Fetch: func(r *http.Request, params pagination.Params) ([]*entity.News, pagination.Metadata, error) {
			in, err := parseFilters(r)
			if err != nil {
				return nil, pagination.Metadata{}, err
			}
			if !canSeeDrafts(r) {
				published := true
				in.Published = &published
			}
			res, err := svc.List(r.Context(), in, params)
			if err != nil {
				return nil, pagination.Metadata{}, err
			}
			return res.Data, res.Pagination, nil
		},
	}
}

func parseFilters(r *http.Request) (newsUC.ListInput, error) {
	q := r.URL.Query()
	in := newsUC.ListInput{
		Category: q.Get("category"),
		Query:    q.Get("q"),
	}
	var err error
	if in.Published, err = pathutil.QueryBool(r, "published"); err != nil {
		return in, err
	}
	if in.Featured, err = pathutil.QueryBool(r, "featured"); err != nil {
		return in, err
	}
	return in, nil
}
