package livestream

import (
	"net/http"

	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/crud"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	streamUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/livestream"
)

type statusRequest struct {
	Status string `json:"status" example:"recess"`
}

type StatusHandler struct{ Svc *streamUC.Service }

// ServeHTTP changes the on-air status of a stream.
//
// @Summary      Change stream status
// @Description  Any transition is allowed. A real change triggers the configured notifiers.
// @Tags         live-streams
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "Stream ID"
// @Param        body  body  statusRequest  true  "New status"
// @Success      200 {object} DTO
// @Failure      400 {string} string "status must be one of live, signal_open, recess, offline"
// @Failure      401 {string} string "Authentication required"
// @Failure      404 {string} string "live stream not found"
// @Router       /api/live-streams/{id}/status [patch]
func (h StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	var req statusRequest
	if err := crud.Decode(r, &req); err != nil {
		crud.BadBody(w, err)
		return
	}
	stream, err := h.Svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.DomainError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(stream))
}
