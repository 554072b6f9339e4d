package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cholospace/mission-control/internal/api/metrics"
	"github.com/cholospace/mission-control/internal/core/domain"
)

// Error kinds exposed to clients.
const (
	KindDuplicateIdentity = "DuplicateIdentity"
	KindInvalidCredential = "InvalidCredential"
	KindInvalidToken      = "InvalidToken"
	KindUnauthenticated   = "Unauthenticated"
	KindUnauthorized      = "Unauthorized"
	KindNotFound          = "NotFound"
	KindInvalidInput      = "InvalidInput"
	KindStorageFailure    = "StorageFailure"
)

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status code and kind.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": {"kind": "...", "message": "..."}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, detail := resolveError(err, log, c)
		switch detail.Kind {
		case KindUnauthenticated, KindInvalidToken, KindUnauthorized:
			metrics.AccessDeniedTotal.WithLabelValues(c.Path(), detail.Kind).Inc()
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: detail})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorDetail) {
	// Known domain errors → deterministic HTTP codes. Wrapped messages are
	// safe to show: they are built from client input, never from storage.
	switch {
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusBadRequest, errorDetail{KindDuplicateIdentity, "identity already exists"}
	case errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusUnauthorized, errorDetail{KindInvalidCredential, "invalid credentials"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorDetail{KindInvalidToken, "invalid or expired token"}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorDetail{KindUnauthenticated, "authentication required"}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, errorDetail{KindUnauthorized, "access forbidden"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorDetail{KindNotFound, "not found"}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, errorDetail{KindInvalidInput, err.Error()}
	}

	// Echo's own errors (bind failures, 404/405 from router, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorDetail{kindForStatus(he.Code), fmt.Sprintf("%v", he.Message)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorDetail{KindStorageFailure, "internal server error"}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindUnauthorized
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return KindNotFound
	case http.StatusConflict:
		return KindDuplicateIdentity
	}
	if code >= 400 && code < 500 {
		return KindInvalidInput
	}
	return KindStorageFailure
}
