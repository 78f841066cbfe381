package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/api/metrics"
	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// CheckoutService converts the cart into exactly one persisted RFQ order.
// The create is a single atomic write carrying every line; the follow-up
// cart clear is best-effort and strictly sequenced after the create.
type CheckoutService struct {
	carts  ports.CartRepository
	orders ports.OrderRepository
	log    zerolog.Logger
}

func NewCheckoutService(carts ports.CartRepository, orders ports.OrderRepository, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders, log: log}
}

func (s *CheckoutService) Finalize(ctx context.Context, input ports.FinalizeInput) (*ports.FinalizeResult, error) {
	if input.IdempotencyKey != "" {
		existing, err := s.orders.FindByIdempotencyKey(ctx, input.IdempotencyKey)
		if err == nil && existing != nil {
			s.log.Info().Str("idempotency_key", input.IdempotencyKey).Str("order_id", existing.ID).Msg("idempotent replay")
			return &ports.FinalizeResult{
				OrderID:        existing.ID,
				OrderNumber:    existing.OrderNumber,
				LineCount:      len(existing.Lines),
				CartCleared:    true,
				AlreadyExisted: true,
			}, nil
		}
	}

	cart, err := s.carts.FindByOwner(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	order := buildOrder(cart, input)
	if err := s.orders.Create(ctx, order); err != nil {
		// The cart was never touched; the caller sees the failure whole.
		metrics.CheckoutFailuresTotal.Inc()
		return nil, fmt.Errorf("checkout: create order: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.OrderLinesCreatedTotal.Add(float64(len(order.Lines)))
	s.log.Info().
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("customer_id", input.CustomerID).
		Int("lines", len(order.Lines)).
		Msg("order placed")

	// Cart hygiene is secondary to the placed order: a failed clear is
	// logged and reported, never escalated to a checkout failure.
	cleared := true
	if err := s.carts.Clear(ctx, input.CustomerID); err != nil {
		cleared = false
		s.log.Warn().Err(err).Str("customer_id", input.CustomerID).Msg("cart clear failed after checkout, cart left dirty")
	}

	return &ports.FinalizeResult{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		LineCount:   len(order.Lines),
		CartCleared: cleared,
	}, nil
}

// buildOrder materializes one order line per cart item, walking the supplier
// groups so lines for the same supplier sit together. The grouping shapes
// the payload only; every item becomes its own line regardless.
func buildOrder(cart *domain.Cart, input ports.FinalizeInput) *domain.Order {
	order := &domain.Order{
		ID:             uuid.NewString(),
		OrderNumber:    generateOrderNumber(),
		CreatorID:      input.CustomerID,
		Status:         domain.OrderNew,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}
	for _, group := range cart.GroupBySupplier() {
		for _, item := range group.Items {
			order.Lines = append(order.Lines, domain.OrderLine{
				ID:         uuid.NewString(),
				SupplierID: item.SupplierID,
				ProductID:  item.ProductID,
				Name:       item.Name,
				Quantity:   item.Quantity,
				Status:     domain.LinePending,
			})
		}
	}
	return order
}

// generateOrderNumber returns a human-facing number in the format RFQ-XXXXXXXX.
func generateOrderNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("RFQ-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("RFQ-%08X", b)
}
