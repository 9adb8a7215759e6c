package news

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
)

type SlugHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns one article by slug.
//
// @Summary      Get news by slug
// @Tags         news
// @Produce      json
// @Param        slug path string true "URL slug"
// @Success      200 {object} entity.News
// @Failure      404 {string} string "news not found"
// @Router       /api/news/slug/{slug} [get]
func (h SlugHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, err := h.Svc.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	if !visible(r, n) {
		respond.DomainError(w, newsUC.ErrNewsNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, n)
}
