package livestream

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	streamUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/livestream"
)

// ListHandler serves GET /api/live-streams.
//
// @Summary      List live streams
// @Description  Streams ordered by display_order. public=true keeps live, recess and signal_open.
// @Tags         live-streams
// @Produce      json
// @Param        public  query  bool    false  "Only statuses shown on the public page"
// @Param        status  query  string  false  "live | signal_open | recess | offline"
// @Success      200 {array}  DTO
// @Failure      400 {string} string "status must be one of ..."
// @Router       /api/live-streams [get]
func ListHandler(svc *streamUC.Service) http.Handler {
	return crud.List[entity.LiveStream]{
		View: ToDTO,
		Fetch: func(r *http.Request) ([]*entity.LiveStream, error) {
			public, err := pathutil.QueryBool(r, "public")
			if err != nil {
				return nil, err
			}
			return svc.List(r.Context(), streamUC.ListInput{
				Public: public != nil && *public,
				Status: r.URL.Query().Get("status"),
			})
		},
	}
}
