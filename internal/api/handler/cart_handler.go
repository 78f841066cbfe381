package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// CartHandler exposes the buyer's cart. All routes act on the cart of the
// authenticated actor's company; there is no cross-tenant addressing.
type CartHandler struct {
	carts    ports.CartService
	checkout ports.CheckoutService
}

func NewCartHandler(carts ports.CartService, checkout ports.CheckoutService) *CartHandler {
	return &CartHandler{carts: carts, checkout: checkout}
}

type addItemRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	SupplierID string `json:"supplier_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Origin     string `json:"origin,omitempty"`
	InStock    bool   `json:"in_stock"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
	Image      string `json:"image,omitempty"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type cartResponse struct {
	Cart   *domain.Cart           `json:"cart"`
	Groups []domain.SupplierGroup `json:"groups"`
}

type checkoutResponse struct {
	OrderID        string `json:"order_id"`
	OrderNumber    string `json:"order_number"`
	LineCount      int    `json:"line_count"`
	CartCleared    bool   `json:"cart_cleared"`
	AlreadyExisted bool   `json:"already_existed"`
}

func cartView(view *ports.CartView) cartResponse {
	return cartResponse{Cart: view.Cart, Groups: view.Groups}
}

// Get returns the actor's cart grouped by supplier.
//
// @Summary      Get the cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Router       /v1/cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	view, err := h.carts.Get(c.Request().Context(), actor.CompanyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartView(view))
}

// AddItem adds a product to the cart, merging quantity on re-add.
//
// @Summary      Add an item to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Item"
// @Success      200   {object}  cartResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.carts.AddItem(c.Request().Context(), ports.AddItemInput{
		OwnerID:    actor.CompanyID,
		ProductID:  req.ProductID,
		SupplierID: req.SupplierID,
		Name:       req.Name,
		Origin:     req.Origin,
		InStock:    req.InStock,
		Quantity:   req.Quantity,
		Image:      req.Image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartView(view))
}

// UpdateQuantity sets the quantity for one item.
//
// @Summary      Update an item's quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string                 true  "Product id"
// @Param        body        body      updateQuantityRequest  true  "New quantity"
// @Success      200         {object}  cartResponse
// @Failure      404         {object}  map[string]string
// @Router       /v1/cart/items/{product_id} [put]
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.carts.UpdateQuantity(c.Request().Context(), actor.CompanyID, c.Param("product_id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartView(view))
}

// RemoveItem deletes one item from the cart.
//
// @Summary      Remove an item
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path      string  true  "Product id"
// @Success      200         {object}  cartResponse
// @Failure      404         {object}  map[string]string
// @Router       /v1/cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}
	view, err := h.carts.RemoveItem(c.Request().Context(), actor.CompanyID, c.Param("product_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartView(view))
}

// Checkout converts the cart into one RFQ order. Replaying the same
// Idempotency-Key returns the original order instead of creating another.
//
// @Summary      Finalize the cart into an order
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string  false  "Idempotency key to prevent duplicate submissions"
// @Success      201              {object}  checkoutResponse
// @Failure      422              {object}  map[string]string
// @Router       /v1/cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return err
	}

	result, err := h.checkout.Finalize(c.Request().Context(), ports.FinalizeInput{
		CustomerID:     actor.CompanyID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, checkoutResponse{
		OrderID:        result.OrderID,
		OrderNumber:    result.OrderNumber,
		LineCount:      result.LineCount,
		CartCleared:    result.CartCleared,
		AlreadyExisted: result.AlreadyExisted,
	})
}
