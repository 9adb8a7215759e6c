package news

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/auth"
)

// canSeeDrafts reports whether the caller sent a valid staff token.
// Anonymous callers only ever see published news.
func canSeeDrafts(r *http.Request) bool {
	_, ok := auth.UserFromContext(r.Context())
	return ok
}

func visible(r *http.Request, n *entity.News) bool {
	return n.Published || canSeeDrafts(r)
}
