package ports

import (
	"context"
	"time"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders. Scoping
// is always applied by the service layer from the actor's role: customers
// see their own orders, suppliers see orders carrying their lines.
type ListOrdersFilter struct {
	CreatorID  string // non-empty = scoped to a customer company
	SupplierID string // non-empty = orders containing this supplier's lines
	Status     string // optional: filter by derived order status
	Page       int    // 1-based
	Limit      int    // capped by the service
}

// OrderRepository defines persistence for RFQ orders. An order and its lines
// live in a single document, so every write below is atomic.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	// Update replaces the order's status and lines in one write.
	Update(ctx context.Context, order *domain.Order) error
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, int64, error)
}

// RespondLineInput is a supplier's quote on one line.
type RespondLineInput struct {
	Actor             *domain.Actor
	OrderID           string
	LineID            string
	PriceCents        int64
	ShippingCents     int64
	EstimatedDelivery time.Time
	AvailableQuantity int
}

// ListOrdersInput carries the list parameters plus the requesting actor.
type ListOrdersInput struct {
	Actor  *domain.Actor
	Status string
	Page   int
	Limit  int
}

// ListOrdersResult is one page of orders.
type ListOrdersResult struct {
	Orders     []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OrderService drives the order lifecycle after checkout. Every transition
// is validated against the state machine before persisting; an illegal
// transition surfaces domain.ErrPreconditionFailed and changes nothing.
type OrderService interface {
	Get(ctx context.Context, actor *domain.Actor, orderID string) (*domain.Order, error)
	List(ctx context.Context, input ListOrdersInput) (*ListOrdersResult, error)
	ApproveLine(ctx context.Context, actor *domain.Actor, orderID, lineID string) (*domain.Order, error)
	RespondLine(ctx context.Context, input RespondLineInput) (*domain.Order, error)
	CancelOrder(ctx context.Context, actor *domain.Actor, orderID string) (*domain.Order, error)
}
