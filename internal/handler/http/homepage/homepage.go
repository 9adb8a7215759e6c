// Package homepage provides HTTP handlers for the homepage configuration and
// the aggregated homepage payload.
package homepage

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/domain/entity"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/livestream"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
	homeUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/homepage"
)

// Response is the body of GET /api/homepage.
type Response struct {
	Config         *entity.HomepageConfig `json:"config"`
	LatestNews     []*entity.News         `json:"latest_news"`
	FeaturedNews   []*entity.News         `json:"featured_news"`
	LiveStreams    []any                  `json:"live_streams"`
	FeaturedStream any                    `json:"featured_stream"`
	Programs       []*entity.Program      `json:"programs"`
	RadioPrograms  []*entity.RadioProgram `json:"radio_programs"`
}

func Register(mux *http.ServeMux, cfg *homeUC.ConfigService, agg *homeUC.Aggregator, logger *slog.Logger) {
	mux.Handle("GET    /api/homepage", PageHandler{Agg: agg, Logger: logger})
	mux.Handle("GET    /api/homepage-config", GetConfigHandler{Svc: cfg})
	mux.Handle("PUT    /api/homepage-config", UpdateConfigHandler{Svc: cfg})
}

type PageHandler struct {
	Agg    *homeUC.Aggregator
	Logger *slog.Logger
}

// ServeHTTP returns everything the public homepage renders in one call.
//
// @Summary      Homepage payload
// @Description  Config, latest and featured news, public streams, programs and radio programs.
// @Description  Sections that fail to load are returned empty.
// @Tags         homepage
// @Produce      json
// @Success      200 {object} Response
// @Router       /api/homepage [get]
func (h PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := h.Agg.Build(r.Context())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			logging.WithRequestID(r.Context(), h.logger()).Warn("homepage request cancelled", slog.Any("error", err))
			respond.SafeError(w, http.StatusServiceUnavailable, err)
			return
		}
		respond.DomainError(w, err)
		return
	}

	out := Response{
		Config:        page.Config,
		LatestNews:    crud.Items(page.LatestNews),
		FeaturedNews:  crud.Items(page.FeaturedNews),
		LiveStreams:   crud.Map(page.LiveStreams, livestream.ToDTO),
		Programs:      crud.Items(page.Programs),
		RadioPrograms: crud.Items(page.RadioPrograms),
	}
	if page.FeaturedStream != nil {
		out.FeaturedStream = livestream.ToDTO(page.FeaturedStream)
	}
	respond.JSON(w, http.StatusOK, out)
}

func (h PageHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type GetConfigHandler struct{ Svc *homeUC.ConfigService }

// ServeHTTP returns the stored homepage configuration or the defaults.
//
// @Summary      Get homepage configuration
// @Tags         homepage
// @Produce      json
// @Success      200 {object} entity.HomepageConfig
// @Router       /api/homepage-config [get]
func (h GetConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Svc.Get(r.Context())
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, cfg)
}

type UpdateConfigHandler struct{ Svc *homeUC.ConfigService }

// ServeHTTP replaces the homepage configuration.
//
// @Summary      Update homepage configuration
// @Tags         homepage
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        config body homeUC.ConfigInput true "Full configuration"
// @Success      200 {object} entity.HomepageConfig
// @Failure      400 {string} string "news_limit must be at least 1"
// @Failure      403 {string} string "forbidden"
// @Router       /api/homepage-config [put]
func (h UpdateConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var in homeUC.ConfigInput
	if err := crud.Decode(r, &in); err != nil {
		crud.BadBody(w, err)
		return
	}
	cfg, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, cfg)
}
