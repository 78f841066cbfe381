package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// Screen gates a route behind the actor's capability set for the named
// screen. A redirect decision surfaces as 403 with the safe route in the
// body so the client can navigate there.
func Screen(access ports.AccessService, screen domain.Screen) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := access.Authorize(ActorFrom(c), string(screen))
			switch decision.Kind {
			case domain.DecisionAllow:
				return next(c)
			case domain.DecisionRedirect:
				return c.JSON(http.StatusForbidden, map[string]string{
					"error":    "screen not reachable",
					"redirect": string(decision.To),
				})
			default:
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
		}
	}
}

// RequireRole admits only the listed roles. Used for the operator tier,
// where membership is a property of the role rather than a screen
// capability.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFrom(c)
			if actor == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[actor.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
