package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cholospace/mission-control/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return rec.Code, resp
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		kind string
	}{
		{domain.ErrDuplicateIdentity, http.StatusBadRequest, KindDuplicateIdentity},
		{domain.ErrInvalidCredential, http.StatusUnauthorized, KindInvalidCredential},
		{domain.ErrInvalidToken, http.StatusUnauthorized, KindInvalidToken},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, KindUnauthenticated},
		{fmt.Errorf("%w: write-broadcast", domain.ErrUnauthorized), http.StatusForbidden, KindUnauthorized},
		{domain.ErrNotFound, http.StatusNotFound, KindNotFound},
		{fmt.Errorf("%w: message is required", domain.ErrInvalidInput), http.StatusBadRequest, KindInvalidInput},
		{echo.NewHTTPError(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed, KindNotFound},
		{echo.NewHTTPError(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge, KindInvalidInput},
	}

	for _, tc := range cases {
		code, resp := renderError(t, tc.err)
		if code != tc.code || resp.Error.Kind != tc.kind {
			t.Fatalf("%v: expected %d/%s, got %d/%s", tc.err, tc.code, tc.kind, code, resp.Error.Kind)
		}
	}
}

func TestHTTPErrorHandler_InvalidInputKeepsMessage(t *testing.T) {
	_, resp := renderError(t, fmt.Errorf("%w: message is required", domain.ErrInvalidInput))
	if resp.Error.Message != "invalid input: message is required" {
		t.Fatalf("unexpected message %q", resp.Error.Message)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsHidden(t *testing.T) {
	code, resp := renderError(t, errors.New("mongo: connection reset by 10.0.0.7"))
	if code != http.StatusInternalServerError || resp.Error.Kind != KindStorageFailure {
		t.Fatalf("expected 500/StorageFailure, got %d/%s", code, resp.Error.Kind)
	}
	if resp.Error.Message != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Error.Message)
	}
}
