package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type respondLineRequest struct {
	PriceCents        int64     `json:"price_cents" validate:"required,gt=0"`
	ShippingCents     int64     `json:"shipping_cents" validate:"min=0"`
	EstimatedDelivery time.Time `json:"estimated_delivery" validate:"required"`
	AvailableQuantity int       `json:"available_quantity" validate:"required,min=1"`
}

type listOrdersResponse struct {
	Orders     []*domain.Order `json:"orders"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func queryInt(c echo.Context, name string) int {
	v, _ := strconv.Atoi(c.QueryParam(name))
	return v
}

// List returns the actor's orders: buyers see their company's orders,
// suppliers see orders carrying their lines, operators see all.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by order status"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listOrdersResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	result, err := h.orders.List(c.Request().Context(), ports.ListOrdersInput{
		Actor:  actor,
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listOrdersResponse{
		Orders:     result.Orders,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Get returns one order.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /v1/orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	order, err := h.orders.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// RespondLine records the supplier's quote on a pending line.
//
// @Summary      Respond to an order line
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Order id"
// @Param        line_id  path      string              true  "Line id"
// @Param        body     body      respondLineRequest  true  "Quote"
// @Success      200      {object}  domain.Order
// @Failure      403      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/orders/{id}/lines/{line_id}/respond [post]
func (h *OrderHandler) RespondLine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req respondLineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.RespondLine(c.Request().Context(), ports.RespondLineInput{
		Actor:             actor,
		OrderID:           c.Param("id"),
		LineID:            c.Param("line_id"),
		PriceCents:        req.PriceCents,
		ShippingCents:     req.ShippingCents,
		EstimatedDelivery: req.EstimatedDelivery,
		AvailableQuantity: req.AvailableQuantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// ApproveLine accepts the supplier's quote on a responded line. Retrying an
// approval is a no-op success.
//
// @Summary      Approve an order line
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string  true  "Order id"
// @Param        line_id  path      string  true  "Line id"
// @Success      200      {object}  domain.Order
// @Failure      403      {object}  map[string]string
// @Failure      422      {object}  map[string]string
// @Router       /v1/orders/{id}/lines/{line_id}/approve [post]
func (h *OrderHandler) ApproveLine(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	order, err := h.orders.ApproveLine(c.Request().Context(), actor, c.Param("id"), c.Param("line_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Cancel moves the order to CANCELLED while that is still legal.
//
// @Summary      Cancel an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      422  {object}  map[string]string
// @Router       /v1/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	order, err := h.orders.CancelOrder(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
