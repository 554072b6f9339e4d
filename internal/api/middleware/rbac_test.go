package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/core/domain"
	"github.com/cholospace/mission-control/internal/core/policy"
)

func TestGuard_Allows(t *testing.T) {
	c, rec := newCtx("")
	c.Set(ActorKey, domain.Actor{Username: "JunaidRafi", Role: domain.RoleAdmin})

	called := false
	handler := Guard(policy.WriteBroadcast)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_Forbids(t *testing.T) {
	c, _ := newCtx("")
	c.Set(ActorKey, domain.Actor{Username: "Nova", Role: domain.RolePilot})

	handler := Guard(policy.ReadMasterFeed)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGuard_Anonymous(t *testing.T) {
	c, _ := newCtx("")

	handler := Guard(policy.WriteBroadcast)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGuard_ResourceActionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for resource-dependent action")
		}
	}()
	Guard(policy.DeleteLog)
}
