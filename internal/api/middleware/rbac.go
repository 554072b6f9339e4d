package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/cholospace/mission-control/internal/core/policy"
)

// Guard evaluates a resource-independent policy action before the handler
// runs. It must be composed after Auth. Actions whose rule depends on a
// resource owner cannot be decided here and are rejected at construction.
func Guard(action policy.Action) echo.MiddlewareFunc {
	if policy.RequiresResource(action) {
		panic(fmt.Sprintf("middleware: action %q needs a resource and cannot be guarded by route", action))
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := ActorFrom(c)
			if err := policy.Authorize(action, actor, policy.Resource{}); err != nil {
				return err
			}
			return next(c)
		}
	}
}
