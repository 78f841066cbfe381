package ports

import (
	"context"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// PendingSubscriptionsResult is one page of owner accounts awaiting review.
type PendingSubscriptionsResult struct {
	Users []*domain.User
	Total int64
	Page  int
	Limit int
}

// SubscriptionService drives the request/approve/reject workflow between
// owners and the operator tier.
type SubscriptionService interface {
	// Request moves the actor's subscription to PENDING. Only owner roles
	// may request; a PENDING or active subscription cannot be re-requested.
	Request(ctx context.Context, actor *domain.Actor) (*domain.Subscription, error)
	// Pending lists owner accounts with a PENDING subscription.
	Pending(ctx context.Context, page, limit int) (*PendingSubscriptionsResult, error)
	// Approve activates the user's PENDING subscription.
	Approve(ctx context.Context, userID string) (*domain.Subscription, error)
	// Reject declines the user's PENDING subscription.
	Reject(ctx context.Context, userID string) (*domain.Subscription, error)
}
