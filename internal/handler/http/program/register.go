// Package program provides HTTP handlers for the TV program endpoints.
package program

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	programUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/program"
)

func Register(mux *http.ServeMux, svc *programUC.Service) {
	mux.Handle("GET    /api/programs", ListHandler(svc))
	crud.RegisterItem[entity.Program, programUC.Input](mux, "/api/programs", svc, nil)
}

// ListHandler serves GET /api/programs.
//
// @Summary      List TV programs
// @Tags         programs
// @Produce      json
// @Param        active  query  bool  false  "Only active programs"
// @Success      200 {array} entity.Program
// @Router       /api/programs [get]
func ListHandler(svc *programUC.Service) http.Handler {
	return crud.List[entity.Program]{
		Fetch: func(r *http.Request) ([]*entity.Program, error) {
			active, err := pathutil.QueryBool(r, "active")
			if err != nil {
				return nil, err
			}
			return svc.List(r.Context(), active != nil && *active)
		},
	}
}
