package news

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
)

type GetHandler struct{ Svc *newsUC.Service }

// ServeHTTP returns one article by id. Drafts are 404 for anonymous callers.
//
// @Summary      Get news
// @Tags         news
// @Produce      json
// @Param        id path int true "News ID"
// @Success      200 {object} entity.News
// @Failure      400 {string} string "invalid id"
// @Failure      404 {string} string "news not found"
// @Router       /api/news/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	n, err := h.Svc.Get(r.Context(), id)
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
