package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

type NotificationHandler struct {
	notifications ports.NotificationService
}

func NewNotificationHandler(notifications ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type unreadResponse struct {
	Items []*domain.Notification `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

type unreadCountResponse struct {
	Count int64 `json:"count"`
}

// Unread returns one page of the actor's unread notifications.
//
// @Summary      List unread notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  unreadResponse
// @Router       /v1/notifications [get]
func (h *NotificationHandler) Unread(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	page, err := h.notifications.Unread(c.Request().Context(), actor.ID, queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadResponse{
		Items: page.Items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// Count returns the authoritative unread count. Badge surfaces call this
// after every read event instead of applying deltas.
//
// @Summary      Get the unread count
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  unreadCountResponse
// @Router       /v1/notifications/count [get]
func (h *NotificationHandler) Count(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{Count: count})
}

// MarkRead flips one notification to read and returns the new count.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification id"
// @Success      200  {object}  unreadCountResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkRead(c.Request().Context(), actor.ID, c.Param("id")); err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unreadCountResponse{Count: count})
}

// Stream pushes read events to the client over server-sent events. Each
// event names the user and notification; the client re-queries the count
// rather than decrementing a local value.
//
// @Summary      Stream read events
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  "event stream"
// @Router       /v1/notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	events, cancel := h.notifications.Subscribe()
	defer cancel()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			// Events for other users are broadcast too; only forward ours.
			if event.UserID != actor.ID {
				continue
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(res, "event: read\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
