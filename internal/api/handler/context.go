package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/api/middleware"
	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// currentActor extracts the actor injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing or roleless
// actor means the middleware did not run, so the request is unauthenticated.
func currentActor(c echo.Context) (*domain.Actor, error) {
	actor := middleware.ActorFrom(c)
	if actor == nil || actor.Role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
