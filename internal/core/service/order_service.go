package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/api/metrics"
	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

const maxOrderPageSize = 100

// OrderService drives the post-checkout order lifecycle. Transitions are
// validated in the domain before the single-document update is persisted, so
// a rejected transition never reaches the repository.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

// Get returns the order if the actor's role admits it: customers see their
// own orders, suppliers see orders carrying their lines, operators see all.
func (s *OrderService) Get(ctx context.Context, actor *domain.Actor, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := scopeOrder(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, input ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	if input.Actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	filter := ports.ListOrdersFilter{
		Status: input.Status,
		Page:   input.Page,
		Limit:  input.Limit,
	}
	switch {
	case input.Actor.Role.IsOperator():
		// Unscoped.
	case input.Actor.Role == domain.RoleSupplierOwner || input.Actor.Role == domain.RoleSupplierStaff:
		filter.SupplierID = input.Actor.CompanyID
	default:
		filter.CreatorID = input.Actor.CompanyID
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Limit > maxOrderPageSize {
		filter.Limit = maxOrderPageSize
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListOrdersResult{
		Orders:     orders,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// ApproveLine accepts a supplier quote on behalf of the buyer. Retrying an
// already-approved line is a no-op success.
func (s *OrderService) ApproveLine(ctx context.Context, actor *domain.Actor, orderID, lineID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireCreator(actor, order); err != nil {
		return nil, err
	}

	line, err := order.ApproveLine(lineID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("approve line: %w", err)
	}

	metrics.LineApprovalsTotal.Inc()
	s.log.Info().
		Str("order_id", order.ID).
		Str("line_id", line.ID).
		Str("order_status", string(order.Status)).
		Msg("line approved")
	return order, nil
}

// RespondLine records a supplier quote on a pending line.
func (s *OrderService) RespondLine(ctx context.Context, input ports.RespondLineInput) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := requireLineSupplier(input.Actor, order, input.LineID); err != nil {
		return nil, err
	}

	line, err := order.RespondLine(input.LineID, domain.SupplierResponse{
		PriceCents:        input.PriceCents,
		ShippingCents:     input.ShippingCents,
		EstimatedDelivery: input.EstimatedDelivery,
		AvailableQuantity: input.AvailableQuantity,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("respond line: %w", err)
	}

	metrics.LineResponsesTotal.Inc()
	s.log.Info().
		Str("order_id", order.ID).
		Str("line_id", line.ID).
		Str("supplier_id", line.SupplierID).
		Msg("supplier responded")
	return order, nil
}

// CancelOrder forces the terminal CANCELLED state while that is still legal.
func (s *OrderService) CancelOrder(ctx context.Context, actor *domain.Actor, orderID string) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireCreator(actor, order); err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("cancel order: %w", err)
	}

	metrics.OrdersCancelledTotal.Inc()
	s.log.Info().Str("order_id", order.ID).Msg("order cancelled")
	return order, nil
}

// scopeOrder enforces read access per role.
func scopeOrder(actor *domain.Actor, order *domain.Order) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if actor.Role.IsOperator() {
		return nil
	}
	if order.CreatorID == actor.CompanyID {
		return nil
	}
	for _, line := range order.Lines {
		if line.SupplierID == actor.CompanyID {
			return nil
		}
	}
	// Indistinguishable from absent: the scope filter never reveals other
	// tenants' orders.
	return domain.ErrOrderNotFound
}

// requireCreator admits only the buying company that placed the order.
func requireCreator(actor *domain.Actor, order *domain.Order) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if actor.Role.IsOperator() {
		return nil
	}
	if order.CreatorID != actor.CompanyID {
		return domain.ErrUnauthorized
	}
	return nil
}

// requireLineSupplier admits only the supplier the line is addressed to.
func requireLineSupplier(actor *domain.Actor, order *domain.Order, lineID string) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	line, err := order.Line(lineID)
	if err != nil {
		return err
	}
	if line.SupplierID != actor.CompanyID {
		return domain.ErrUnauthorized
	}
	return nil
}
