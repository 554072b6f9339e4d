package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/api/metrics"
	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// LogHandler handles HTTP requests for the mission log ledger.
type LogHandler struct {
	service ports.LogService
}

func NewLogHandler(service ports.LogService) *LogHandler {
	return &LogHandler{service: service}
}

// Save records a new private log entry.
//
// @Summary      Save a mission log
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveLogRequest  true  "Log entry"
// @Success      200   {object}  saveLogResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Router       /save-log [post]
func (h *LogHandler) Save(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req saveLogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.service.CreateLog(c.Request().Context(), actor, req.Username, req.Message)
	if err != nil {
		return err
	}

	metrics.LogOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusOK, saveLogResponse{ID: entry.ID, Log: entry})
}

// Share makes a log entry public.
//
// @Summary      Share a mission log
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Log ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /share-log/{id} [post]
func (h *LogHandler) Share(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.SetPublic(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.LogOperationsTotal.WithLabelValues("share").Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete removes a log entry.
//
// @Summary      Delete a mission log
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Log ID"
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /delete-log/{id} [delete]
func (h *LogHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	metrics.LogOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// PublicLogs returns the most recent public entries.
//
// @Summary      Public feed
// @Tags         logs
// @Produce      json
// @Param        limit  query     int  false  "Maximum entries (1-20)"
// @Success      200    {array}   domain.LogEntry
// @Failure      400    {object}  errorBody
// @Router       /public-logs [get]
func (h *LogHandler) PublicLogs(c echo.Context) error {
	limit := domain.PublicFeedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: limit must be an integer", domain.ErrInvalidInput)
		}
		limit = n
	}

	entries, err := h.service.ListPublic(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(entries))
}

// GetData returns an identity's avatar, role and full log history.
//
// @Summary      Identity history
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  historyResponse
// @Failure      401       {object}  errorBody
// @Failure      403       {object}  errorBody
// @Failure      404       {object}  errorBody
// @Router       /get-data/{username} [get]
func (h *LogHandler) GetData(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	history, err := h.service.History(c.Request().Context(), actor, c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, historyResponse{
		Avatar: history.Avatar,
		Role:   history.Role,
		Logs:   nonNil(history.Logs),
	})
}

// MasterFeed returns every log and identity.
//
// @Summary      Admin master feed
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  masterFeedResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /admin/master-feed [get]
func (h *LogHandler) MasterFeed(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	feed, err := h.service.MasterFeed(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, masterFeedResponse{
		Logs:  nonNil(feed.Logs),
		Users: nonNil(feed.Users),
	})
}
