package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// SubscriptionHandler covers both sides of the subscription workflow: the
// owner's request and the operator's decision.
type SubscriptionHandler struct {
	subscriptions ports.SubscriptionService
}

func NewSubscriptionHandler(subscriptions ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

type subscriptionResponse struct {
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

type pendingSubscriptionsResponse struct {
	Users []userResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func toSubscriptionResponse(sub *domain.Subscription) subscriptionResponse {
	resp := subscriptionResponse{Status: string(sub.Status)}
	if !sub.ExpiresAt.IsZero() {
		resp.ExpiresAt = sub.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	return resp
}

// Request moves the owner's subscription to PENDING review.
//
// @Summary      Request a subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  subscriptionResponse
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/subscription/request [post]
func (h *SubscriptionHandler) Request(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	sub, err := h.subscriptions.Request(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, toSubscriptionResponse(sub))
}

// Pending lists owner accounts awaiting a decision. Operator only.
//
// @Summary      List pending subscription requests
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  pendingSubscriptionsResponse
// @Router       /v1/subscriptions/pending [get]
func (h *SubscriptionHandler) Pending(c echo.Context) error {
	result, err := h.subscriptions.Pending(c.Request().Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return err
	}

	users := make([]userResponse, 0, len(result.Users))
	for _, u := range result.Users {
		users = append(users, userResponse{
			ID:        u.ID,
			CompanyID: u.CompanyID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      string(u.Role),
		})
	}
	return c.JSON(http.StatusOK, pendingSubscriptionsResponse{
		Users: users,
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Approve activates a pending subscription for one term. Operator only.
//
// @Summary      Approve a subscription request
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Owner account id"
// @Success      200      {object}  subscriptionResponse
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/subscriptions/{user_id}/approve [post]
func (h *SubscriptionHandler) Approve(c echo.Context) error {
	sub, err := h.subscriptions.Approve(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSubscriptionResponse(sub))
}

// Reject declines a pending subscription. Operator only.
//
// @Summary      Reject a subscription request
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Owner account id"
// @Success      200      {object}  subscriptionResponse
// @Failure      404      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/subscriptions/{user_id}/reject [post]
func (h *SubscriptionHandler) Reject(c echo.Context) error {
	sub, err := h.subscriptions.Reject(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSubscriptionResponse(sub))
}
