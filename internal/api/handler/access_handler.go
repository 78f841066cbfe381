package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/api/middleware"
	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// AccessHandler exposes the capability set and routing decisions so the
// client renders exactly what the server will enforce.
type AccessHandler struct {
	access ports.AccessService
}

func NewAccessHandler(access ports.AccessService) *AccessHandler {
	return &AccessHandler{access: access}
}

type authorizeResponse struct {
	Decision string `json:"decision"`
	To       string `json:"to,omitempty"`
}

// Navigation returns the actor's menu entries with the default route.
// Anonymous requests get the public fallback set, so the endpoint sits
// outside the auth gate.
//
// @Summary      Resolve navigation for the current actor
// @Tags         access
// @Produce      json
// @Success      200  {object}  ports.NavigationView
// @Router       /v1/navigation [get]
func (h *AccessHandler) Navigation(c echo.Context) error {
	return c.JSON(http.StatusOK, h.access.Navigation(middleware.ActorFrom(c)))
}

// Authorize reports what the router middleware would decide for a path,
// letting the client pre-check navigation instead of bouncing off a 403.
//
// @Summary      Check route access for the current actor
// @Tags         access
// @Produce      json
// @Param        path  query     string  true  "Route path to check"
// @Success      200   {object}  authorizeResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/authorize [get]
func (h *AccessHandler) Authorize(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path query parameter required")
	}

	decision := h.access.Authorize(middleware.ActorFrom(c), path)
	resp := authorizeResponse{Decision: string(decision.Kind)}
	if decision.Kind == domain.DecisionRedirect {
		resp.To = string(decision.To)
	}
	return c.JSON(http.StatusOK, resp)
}
