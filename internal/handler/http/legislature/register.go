// Package legislature provides HTTP handlers for organs, parliamentary groups and legislators.
package legislature

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	legUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/legislature"
)

type Services struct {
	Organs      *legUC.OrganService
	Groups      *legUC.GroupService
	Legislators *legUC.LegislatorService
}

func Register(mux *http.ServeMux, svc Services) {
	mux.Handle("GET    /api/organs", crud.List[entity.Organ]{
		Fetch: func(r *http.Request) ([]*entity.Organ, error) { return svc.Organs.List(r.Context()) },
	})
	crud.RegisterItem[entity.Organ, legUC.OrganInput](mux, "/api/organs", svc.Organs, nil)

	mux.Handle("GET    /api/parliamentary-groups", crud.List[entity.ParliamentaryGroup]{
		Fetch: func(r *http.Request) ([]*entity.ParliamentaryGroup, error) { return svc.Groups.List(r.Context()) },
	})
	crud.RegisterItem[entity.ParliamentaryGroup, legUC.GroupInput](mux, "/api/parliamentary-groups", svc.Groups, nil)

	mux.Handle("GET    /api/legislators", LegislatorListHandler(svc.Legislators))
	crud.RegisterItem[entity.Legislator, legUC.LegislatorInput](mux, "/api/legislators", svc.Legislators, nil)
}

// LegislatorListHandler serves GET /api/legislators.
//
// @Summary      List legislators
// @Tags         legislature
// @Produce      json
// @Param        chamber   query  string  false  "diputados | senado"
// @Param        group_id  query  int     false  "Parliamentary group"
// @Param        state     query  string  false  "State represented"
// @Success      200 {array} entity.Legislator
// @Failure      400 {string} string "chamber must be one of diputados, senado"
// @Router       /api/legislators [get]
func LegislatorListHandler(svc *legUC.LegislatorService) http.Handler {
	return crud.List[entity.Legislator]{
		Fetch: func(r *http.Request) ([]*entity.Legislator, error) {
			groupID, err := pathutil.QueryID(r, "group_id")
			if err != nil {
				return nil, err
			}
			q := r.URL.Query()
			return svc.List(r.Context(), repository.LegislatorFilters{
				Chamber: q.Get("chamber"),
				GroupID: groupID,
				State:   q.Get("state"),
			})
		},
	}
}
