package ports

import (
	"context"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// AuthRepository defines persistence for portal accounts.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateSubscription replaces the stored subscription snapshot for the
	// user. Used by the subscription request/approval workflow.
	UpdateSubscription(ctx context.Context, userID string, sub *domain.Subscription) error
	// ListBySubscriptionStatus returns owner accounts whose subscription is
	// in the given status, newest first.
	ListBySubscriptionStatus(ctx context.Context, status domain.SubscriptionStatus, page, limit int) ([]*domain.User, int64, error)
}

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Role           string
	CompanyID      string
	AllowedScreens []string
}

// LoginInput carries credentials plus the explicit session-replace flag.
// Force must be true to override an existing live session; without it a
// conflicting session is a typed error the client must confirm through.
type LoginInput struct {
	Email    string
	Password string
	Force    bool
}

// LoginResult is the session the client persists.
type LoginResult struct {
	Token string
	Actor *domain.Actor
}

// AuthService implements registration, login, and logout.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	Logout(ctx context.Context, userID string) error
}
