package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/core/domain"
)

// ActorKey is the echo.Context key holding the verified domain.Actor.
const ActorKey = "actor"

// TokenVerifier turns a bearer token into a verified actor.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Actor, error)
}

// Auth verifies the bearer token and stores the resulting actor in the
// context. Requests without a valid token never reach next.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return fmt.Errorf("%w: missing authorization header", domain.ErrUnauthenticated)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return fmt.Errorf("%w: malformed authorization header", domain.ErrInvalidToken)
			}

			actor, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by Auth. ok is false when the request
// was not authenticated.
func ActorFrom(c echo.Context) (domain.Actor, bool) {
	actor, ok := c.Get(ActorKey).(domain.Actor)
	if !ok || actor.Anonymous() {
		return domain.Actor{}, false
	}
	return actor, true
}
