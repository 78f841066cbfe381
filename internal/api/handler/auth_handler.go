package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	Role           string   `json:"role" validate:"required"`
	CompanyID      string   `json:"company_id,omitempty"`
	AllowedScreens []string `json:"allowed_screens,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Force    bool   `json:"force,omitempty"`
}

type userResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type loginResponse struct {
	Token string        `json:"token"`
	Actor *domain.Actor `json:"actor"`
}

// Register creates a portal account.
//
// @Summary      Register an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		CompanyID:      req.CompanyID,
		AllowedScreens: req.AllowedScreens,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{
		ID:        user.ID,
		CompanyID: user.CompanyID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
	})
}

// Login authenticates and mints a session token. When another session is
// already live for the account the response is 409; retrying with
// force=true replaces it.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Force:    req.Force,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: result.Token, Actor: result.Actor})
}

// Logout revokes the current session.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204  "session revoked"
// @Failure      401  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), actor.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
