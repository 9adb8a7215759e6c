// Package transparency provides HTTP handlers for the Defensoría de la Audiencia
// content and the transparency portal (sections, documents and datasets).
package transparency

import (
	"log/slog"
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	trUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/transparency"
)

type Services struct {
	Defensoria *trUC.DefensoriaService
	Sections   *trUC.SectionService
	Documents  *trUC.DocumentService
	Datasets   *trUC.DatasetService
}

func Register(mux *http.ServeMux, svc Services, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /api/defensoria-audiencia", DefensoriaListHandler(svc.Defensoria))
	crud.RegisterItem[entity.DefensoriaContent, trUC.DefensoriaInput](mux, "/api/defensoria-audiencia", svc.Defensoria, nil)

	mux.Handle("GET    /api/transparency-sections", crud.List[entity.TransparencySection]{
		Fetch: func(r *http.Request) ([]*entity.TransparencySection, error) { return svc.Sections.List(r.Context()) },
	})
	crud.RegisterItem[entity.TransparencySection, trUC.SectionInput](mux, "/api/transparency-sections", svc.Sections, nil)

	mux.Handle("GET    /api/documents", DocumentListHandler(svc.Documents, paginationCfg, logger))
	crud.RegisterItem[entity.Document, trUC.DocumentInput](mux, "/api/documents", svc.Documents, nil)

	mux.Handle("GET    /api/datasets", DatasetListHandler(svc.Datasets))
	crud.RegisterItem[entity.Dataset, trUC.DatasetInput](mux, "/api/datasets", svc.Datasets, nil)
}

// DefensoriaListHandler serves GET /api/defensoria-audiencia.
//
// @Summary      List Defensoría content
// @Tags         defensoria
// @Produce      json
// @Param        section  query  string  false  "informes | codigo-etica | lineamientos | contacto | preguntas | general"
// @Success      200 {array} entity.DefensoriaContent
// @Failure      400 {string} string "section must be one of ..."
// @Router       /api/defensoria-audiencia [get]
func DefensoriaListHandler(svc *trUC.DefensoriaService) http.Handler {
	return crud.List[entity.DefensoriaContent]{
		Fetch: func(r *http.Request) ([]*entity.DefensoriaContent, error) {
			return svc.List(r.Context(), r.URL.Query().Get("section"))
		},
	}
}

// DocumentListHandler serves GET /api/documents.
//
// @Summary      List transparency documents
// @Tags         transparency
// @Produce      json
// @Param        category  query  string  false  "Category"
// @Param        page      query  int     false  "Page number (1-based)" default(1) minimum(1)
// @Param        limit     query  int     false  "Items per page" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[entity.Document]
// @Router       /api/documents [get]
func DocumentListHandler(svc *trUC.DocumentService, cfg pagination.Config, logger *slog.Logger) http.Handler {
	return crud.PaginatedList[entity.Document]{
		Resource: "documents",
		Config:   cfg,
		Logger:   logger,
		Fetch: func(r *http.Request, params pagination.Params) ([]*entity.Document, pagination.Metadata, error) {
			page, err := svc.List(r.Context(), r.URL.Query().Get("category"), params)
			if err != nil {
				return nil, pagination.Metadata{}, err
			}
			return page.Data, page.Pagination, nil
		},
	}
}

// DatasetListHandler serves GET /api/datasets.
//
// @Summary      List open-data datasets
// @Tags         transparency
// @Produce      json
// @Param        category  query  string  false  "Category"
// @Param        format    query  string  false  "csv | json | xlsx | xml | pdf"
// @Success      200 {array} entity.Dataset
// @Failure      400 {string} string "format must be one of csv, json, xlsx, xml, pdf"
// @Router       /api/datasets [get]
func DatasetListHandler(svc *trUC.DatasetService) http.Handler {
	return crud.List[entity.Dataset]{
		Fetch: func(r *http.Request) ([]*entity.Dataset, error) {
			q := r.URL.Query()
			return svc.List(r.Context(), q.Get("category"), q.Get("format"))
		},
	}
}
