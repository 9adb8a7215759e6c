package livestream

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	streamUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/livestream"
)

func Register(mux *http.ServeMux, svc *streamUC.Service) {
	mux.Handle("GET    /api/live-streams", ListHandler(svc))
	mux.Handle("PATCH  /api/live-streams/{id}/status", StatusHandler{Svc: svc})
	crud.RegisterItem[entity.LiveStream, streamUC.Input](mux, "/api/live-streams", svc, ToDTO)
}
