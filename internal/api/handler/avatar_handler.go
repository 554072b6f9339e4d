package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/api/metrics"
	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/ports"
)

// avatarField is the multipart field carrying the image.
const avatarField = "avatar"

type AvatarHandler struct {
	service ports.AvatarService
}

func NewAvatarHandler(service ports.AvatarService) *AvatarHandler {
	return &AvatarHandler{service: service}
}

// Upload replaces the caller's avatar.
//
// @Summary      Upload avatar
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar    formData  file    true   "Image (png, jpeg, gif, webp)"
// @Param        username  formData  string  false  "Target username, must match the session"
// @Success      200       {object}  avatarResponse
// @Failure      400       {object}  errorBody
// @Failure      401       {object}  errorBody
// @Failure      403       {object}  errorBody
// @Router       /upload-avatar [post]
func (h *AvatarHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(avatarField)
	if err != nil {
		metrics.AvatarUploadsTotal.WithLabelValues("rejected").Inc()
		return fmt.Errorf("%w: missing %q file", domain.ErrInvalidInput, avatarField)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	ref, err := h.service.Upload(c.Request().Context(), actor, ports.AvatarUpload{
		Target:   c.FormValue("username"),
		Filename: fh.Filename,
		Size:     fh.Size,
		Content:  f,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			metrics.AvatarUploadsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.AvatarUploadsTotal.WithLabelValues("stored").Inc()
	return c.JSON(http.StatusOK, avatarResponse{Path: ref})
}
