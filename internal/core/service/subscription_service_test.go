package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

func TestSubscriptionService_Request_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "owner@acme.com", "pass123", domain.RoleCustomerOwner)

	sub, err := svc.Request(context.Background(), &domain.Actor{ID: user.ID, Role: user.Role})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != domain.SubscriptionPending {
		t.Errorf("expected PENDING, got %s", sub.Status)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.Subscription == nil || stored.Subscription.Status != domain.SubscriptionPending {
		t.Errorf("request must be persisted: %+v", stored.Subscription)
	}
}

func TestSubscriptionService_Request_StaffForbidden(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "staff@acme.com", "pass123", domain.RoleCustomerStaff)

	_, err := svc.Request(context.Background(), &domain.Actor{ID: user.ID, Role: user.Role})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("only owners request subscriptions, got %v", err)
	}
}

func TestSubscriptionService_Request_AlreadyPending(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "owner@acme.com", "pass123", domain.RoleSupplierOwner)
	actor := &domain.Actor{ID: user.ID, Role: user.Role}

	if _, err := svc.Request(context.Background(), actor); err != nil {
		t.Fatalf("first request: %v", err)
	}
	_, err := svc.Request(context.Background(), actor)
	if !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestSubscriptionService_Request_AlreadyActive(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "owner@acme.com", "pass123", domain.RoleCustomerOwner)
	if err := repo.UpdateSubscription(context.Background(), user.ID, &domain.Subscription{
		Status:    domain.SubscriptionApproved,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	_, err := svc.Request(context.Background(), &domain.Actor{ID: user.ID, Role: user.Role})
	if !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

// An expired subscription may be requested again.
func TestSubscriptionService_Request_AfterExpiry(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "owner@acme.com", "pass123", domain.RoleCustomerOwner)
	if err := repo.UpdateSubscription(context.Background(), user.ID, &domain.Subscription{
		Status:    domain.SubscriptionApproved,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	sub, err := svc.Request(context.Background(), &domain.Actor{ID: user.ID, Role: user.Role})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != domain.SubscriptionPending {
		t.Errorf("expected PENDING, got %s", sub.Status)
	}
}

func TestSubscriptionService_Approve_SetsExpiry(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "owner@acme.com", "pass123", domain.RoleCustomerOwner)
	if _, err := svc.Request(context.Background(), &domain.Actor{ID: user.ID, Role: user.Role}); err != nil {
		t.Fatalf("request: %v", err)
	}

	sub, err := svc.Approve(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != domain.SubscriptionApproved {
		t.Errorf("expected APPROVED, got %s", sub.Status)
	}
	if !sub.IsActive(time.Now().UTC()) {
		t.Error("approved subscription must be active now")
	}
	if sub.IsActive(time.Now().UTC().Add(subscriptionTerm + time.Hour)) {
		t.Error("approved subscription must lapse after its term")
	}
}

func TestSubscriptionService_Reject_NoExpiry(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "owner@acme.com", "pass123", domain.RoleSupplierOwner)
	if _, err := svc.Request(context.Background(), &domain.Actor{ID: user.ID, Role: user.Role}); err != nil {
		t.Fatalf("request: %v", err)
	}

	sub, err := svc.Reject(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Status != domain.SubscriptionRejected {
		t.Errorf("expected REJECTED, got %s", sub.Status)
	}
	if sub.IsActive(time.Now().UTC()) {
		t.Error("rejected subscription must not be active")
	}
}

func TestSubscriptionService_Decide_RequiresPending(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	user := seedUser(t, repo, "owner@acme.com", "pass123", domain.RoleCustomerOwner)

	if _, err := svc.Approve(context.Background(), user.ID); !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Errorf("approving with no request must fail, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSubscriptionService_Pending_ListsOnlyPending(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewSubscriptionService(repo, discardLogger)
	pending := seedUser(t, repo, "pending@acme.com", "pass123", domain.RoleCustomerOwner)
	if _, err := svc.Request(context.Background(), &domain.Actor{ID: pending.ID, Role: pending.Role}); err != nil {
		t.Fatalf("request: %v", err)
	}
	seedUser(t, repo, "quiet@acme.com", "pass123", domain.RoleCustomerOwner)

	result, err := svc.Pending(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 || result.Users[0].ID != pending.ID {
		t.Errorf("unexpected pending list: total=%d", result.Total)
	}
}
