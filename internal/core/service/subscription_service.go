package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/api/metrics"
	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

const (
	maxSubscriptionPageSize = 100
	subscriptionTerm        = 365 * 24 * time.Hour
)

// SubscriptionService runs the owner-request / operator-decision workflow.
type SubscriptionService struct {
	repo ports.AuthRepository
	log  zerolog.Logger
}

func NewSubscriptionService(repo ports.AuthRepository, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{repo: repo, log: log}
}

// Request moves the actor's subscription to PENDING. Re-requesting while a
// decision is pending, or while the subscription is active, is an illegal
// transition.
func (s *SubscriptionService) Request(ctx context.Context, actor *domain.Actor) (*domain.Subscription, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.Role.IsOwner() {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user.Subscription != nil {
		if user.Subscription.Status == domain.SubscriptionPending {
			return nil, fmt.Errorf("%w: subscription request already pending", domain.ErrPreconditionFailed)
		}
		if user.Subscription.IsActive(time.Now().UTC()) {
			return nil, fmt.Errorf("%w: subscription already active", domain.ErrPreconditionFailed)
		}
	}

	sub := &domain.Subscription{Status: domain.SubscriptionPending}
	if err := s.repo.UpdateSubscription(ctx, user.ID, sub); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("subscription requested")
	return sub, nil
}

func (s *SubscriptionService) Pending(ctx context.Context, page, limit int) (*ports.PendingSubscriptionsResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxSubscriptionPageSize {
		limit = maxSubscriptionPageSize
	}

	users, total, err := s.repo.ListBySubscriptionStatus(ctx, domain.SubscriptionPending, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.PendingSubscriptionsResult{Users: users, Total: total, Page: page, Limit: limit}, nil
}

// Approve activates a PENDING subscription for one term.
func (s *SubscriptionService) Approve(ctx context.Context, userID string) (*domain.Subscription, error) {
	return s.decide(ctx, userID, domain.SubscriptionApproved)
}

// Reject declines a PENDING subscription.
func (s *SubscriptionService) Reject(ctx context.Context, userID string) (*domain.Subscription, error) {
	return s.decide(ctx, userID, domain.SubscriptionRejected)
}

func (s *SubscriptionService) decide(ctx context.Context, userID string, status domain.SubscriptionStatus) (*domain.Subscription, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("subscription decision: %w", err)
	}
	if user.Subscription == nil || user.Subscription.Status != domain.SubscriptionPending {
		return nil, fmt.Errorf("%w: no pending subscription to decide", domain.ErrPreconditionFailed)
	}

	sub := &domain.Subscription{Status: status}
	if status == domain.SubscriptionApproved {
		sub.ExpiresAt = time.Now().UTC().Add(subscriptionTerm)
	}
	if err := s.repo.UpdateSubscription(ctx, userID, sub); err != nil {
		return nil, err
	}

	metrics.SubscriptionDecisionsTotal.WithLabelValues(string(status)).Inc()
	s.log.Info().Str("user_id", userID).Str("status", string(status)).Msg("subscription decided")
	return sub, nil
}
