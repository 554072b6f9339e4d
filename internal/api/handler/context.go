package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/api/middleware"
	"github.com/cholospace/mission-control/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and fails fast
// when a handler that needs a session is mounted without it.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return domain.Actor{}, fmt.Errorf("%w: missing session", domain.ErrUnauthenticated)
	}
	return actor, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator. Both failures surface as invalid input.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	return nil
}
