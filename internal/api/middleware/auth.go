package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// ActorKey is the echo context key the Auth middleware stores the actor
// under.
const ActorKey = "actor"

// Auth validates the JWT and rebuilds the session actor into the context.
// The token carries the full session record, so no database round trip is
// needed per request.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ActorKey, actorFromClaims(claims))
			return next(c)
		}
	}
}

// OptionalAuth rebuilds the actor when a valid bearer token is present and
// lets the request through anonymously otherwise. Used on the navigation
// endpoints, which must answer for logged-out visitors too.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err == nil && tkn.Valid {
				c.Set(ActorKey, actorFromClaims(claims))
			}
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated actor, or nil on an anonymous request.
func ActorFrom(c echo.Context) *domain.Actor {
	actor, _ := c.Get(ActorKey).(*domain.Actor)
	return actor
}

func actorFromClaims(claims jwt.MapClaims) *domain.Actor {
	str := func(key string) string {
		s, _ := claims[key].(string)
		return s
	}

	actor := &domain.Actor{
		ID:        str("sub"),
		CompanyID: str("company_id"),
		Name:      str("name"),
		Role:      domain.Role(str("role")),
	}

	// JSON numbers and arrays come back as float64 and []interface{}.
	if screens, ok := claims["allowed_screens"].([]interface{}); ok {
		for _, s := range screens {
			if screen, ok := s.(string); ok {
				actor.AllowedScreens = append(actor.AllowedScreens, screen)
			}
		}
	}
	if status, ok := claims["sub_status"].(string); ok {
		sub := &domain.Subscription{Status: domain.SubscriptionStatus(status)}
		if exp, ok := claims["sub_expires"].(float64); ok {
			sub.ExpiresAt = time.Unix(int64(exp), 0).UTC()
		}
		actor.Subscription = sub
	}
	return actor
}
