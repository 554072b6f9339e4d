package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/api/metrics"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// BroadcastHandler serves the single system-wide announcement.
type BroadcastHandler struct {
	service ports.BroadcastService
}

func NewBroadcastHandler(service ports.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{service: service}
}

// Get returns the current announcement.
//
// @Summary      Current broadcast
// @Tags         broadcast
// @Produce      json
// @Success      200  {object}  broadcastResponse
// @Router       /api/alert [get]
func (h *BroadcastHandler) Get(c echo.Context) error {
	msg, err := h.service.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, broadcastResponse{Message: msg})
}

// Set replaces the announcement.
//
// @Summary      Publish a broadcast
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      broadcastRequest  true  "Announcement"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /admin/broadcast [post]
func (h *BroadcastHandler) Set(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req broadcastRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Set(c.Request().Context(), req.Message, actor); err != nil {
		return err
	}

	metrics.BroadcastUpdatesTotal.Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
