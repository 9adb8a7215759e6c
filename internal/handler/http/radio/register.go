// Package radio provides HTTP handlers for radio categories, programs and episodes.
package radio

import (
	"log/slog"
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	"github.com/mcarbmont89/full-congreso-sub000/internal/repository"
	radioUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/radio"
)

// Services groups the radio use cases.
type Services struct {
	Categories *radioUC.CategoryService
	Programs   *radioUC.ProgramService
	Episodes   *radioUC.EpisodeService
}

func Register(mux *http.ServeMux, svc Services, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /api/radio/categories", CategoryListHandler(svc.Categories))
	crud.RegisterItem[entity.RadioCategory, radioUC.CategoryInput](mux, "/api/radio/categories", svc.Categories, nil)

	mux.Handle("GET    /api/radio/programs", ProgramListHandler(svc.Programs))
	crud.RegisterItem[entity.RadioProgram, radioUC.ProgramInput](mux, "/api/radio/programs", svc.Programs, nil)

	mux.Handle("GET    /api/radio/episodes", EpisodeListHandler(svc.Episodes, paginationCfg, logger))
	crud.RegisterItem[entity.RadioEpisode, radioUC.EpisodeInput](mux, "/api/radio/episodes", svc.Episodes, nil)
}

// CategoryListHandler serves GET /api/radio/categories.
//
// @Summary      List radio categories
// @Tags         radio
// @Produce      json
// @Success      200 {array} entity.RadioCategory
// @Router       /api/radio/categories [get]
func CategoryListHandler(svc *radioUC.CategoryService) http.Handler {
	return crud.List[entity.RadioCategory]{
		Fetch: func(r *http.Request) ([]*entity.RadioCategory, error) {
			return svc.List(r.Context())
		},
	}
}

// ProgramListHandler serves GET /api/radio/programs.
//
// @Summary      List radio programs
// @Tags         radio
// @Produce      json
// @Param        category_id  query  int   false  "Category"
// @Param        active       query  bool  false  "Only active programs"
// @Success      200 {array} entity.RadioProgram
// @Failure      400 {string} string "invalid category_id"
// @Router       /api/radio/programs [get]
func ProgramListHandler(svc *radioUC.ProgramService) http.Handler {
	return crud.List[entity.RadioProgram]{
		Fetch: func(r *http.Request) ([]*entity.RadioProgram, error) {
			categoryID, err := pathutil.QueryID(r, "category_id")
			if err != nil {
				return nil, err
			}
			active, err := pathutil.QueryBool(r, "active")
			if err != nil {
				return nil, err
			}
			return svc.List(r.Context(), repository.RadioProgramFilters{
				CategoryID: categoryID,
				ActiveOnly: active != nil && *active,
			})
		},
	}
}

// EpisodeListHandler serves GET /api/radio/episodes.
//
// @Summary      List radio episodes
// @Tags         radio
// @Produce      json
// @Param        program_id  query  int  false  "Radio program"
// @Param        page        query  int  false  "Page number (1-based)" default(1) minimum(1)
// @Param        limit       query  int  false  "Items per page" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[entity.RadioEpisode]
// @Failure      400 {string} string "invalid program_id"
// @Router       /api/radio/episodes [get]
func EpisodeListHandler(svc *radioUC.EpisodeService, cfg pagination.Config, logger *slog.Logger) http.Handler {
	return crud.PaginatedList[entity.RadioEpisode]{
		Resource: "radio_episodes",
		Config:   cfg,
		Logger:   logger,
		Fetch: func(r *http.Request, params pagination.Params) ([]*entity.RadioEpisode, pagination.Metadata, error) {
			programID, err := pathutil.QueryID(r, "program_id")
			if err != nil {
				return nil, pagination.Metadata{}, err
			}
			page, err := svc.List(r.Context(), programID, params)
			if err != nil {
				return nil, pagination.Metadata{}, err
			}
			return page.Data, page.Pagination, nil
		},
	}
}
