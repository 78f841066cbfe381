package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Subscription != nil {
		sub := *u.Subscription
		clone.Subscription = &sub
	}
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := cloneUser(user)
	r.byEmail[clone.Email] = clone
	r.byID[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) UpdateSubscription(_ context.Context, userID string, sub *domain.Subscription) error {
	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	clone := *sub
	u.Subscription = &clone
	return nil
}

func (r *stubAuthRepo) ListBySubscriptionStatus(_ context.Context, status domain.SubscriptionStatus, _, _ int) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.byID {
		if u.Subscription != nil && u.Subscription.Status == status {
			out = append(out, cloneUser(u))
		}
	}
	return out, int64(len(out)), nil
}

type stubSessionRegistry struct {
	active  map[string]string
	putErr  error
	getErr  error
	deleted []string
}

func newStubSessionRegistry() *stubSessionRegistry {
	return &stubSessionRegistry{active: make(map[string]string)}
}

func (r *stubSessionRegistry) Active(_ context.Context, userID string) (string, error) {
	if r.getErr != nil {
		return "", r.getErr
	}
	return r.active[userID], nil
}

func (r *stubSessionRegistry) Put(_ context.Context, userID, sessionID string, _ time.Duration) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.active[userID] = sessionID
	return nil
}

func (r *stubSessionRegistry) Delete(_ context.Context, userID string) error {
	delete(r.active, userID)
	r.deleted = append(r.deleted, userID)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func seedUser(t *testing.T, repo *stubAuthRepo, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &domain.User{
		ID:           "user_" + email,
		CompanyID:    "co_" + email,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if _, err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionRegistry(), "secret", time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "pass123",
		Role:     "customer_owner",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleCustomerOwner {
		t.Errorf("expected normalized role, got %s", user.Role)
	}
	if user.CompanyID == "" {
		t.Error("owner registration must anchor a company")
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubSessionRegistry(), "secret", time.Hour, discardLogger)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "x@example.com",
		Password: "p",
		Role:     "wizard",
	})
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestAuthService_Register_StaffRequiresCompany(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubSessionRegistry(), "secret", time.Hour, discardLogger)

	_, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "staff@example.com",
		Password: "p",
		Role:     "CUSTOMER_STAFF",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	sessions := newStubSessionRegistry()
	svc := NewAuthService(repo, sessions, "secret", time.Hour, discardLogger)
	seedUser(t, repo, "bob@example.com", "hunter2", domain.RoleSupplierOwner)

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "bob@example.com", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.Actor.Role != domain.RoleSupplierOwner {
		t.Errorf("expected supplier owner actor, got %s", result.Actor.Role)
	}
	if sessions.active[result.Actor.ID] == "" {
		t.Error("login must record the live session")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionRegistry(), "secret", time.Hour, discardLogger)
	seedUser(t, repo, "bob@example.com", "hunter2", domain.RoleSupplierOwner)

	_, err := svc.Login(context.Background(), ports.LoginInput{Email: "bob@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserIndistinguishable(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubSessionRegistry(), "secret", time.Hour, discardLogger)

	_, err := svc.Login(context.Background(), ports.LoginInput{Email: "ghost@example.com", Password: "x"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user must look like bad credentials, got %v", err)
	}
}

func TestAuthService_Login_ConflictingSession(t *testing.T) {
	repo := newStubAuthRepo()
	sessions := newStubSessionRegistry()
	svc := NewAuthService(repo, sessions, "secret", time.Hour, discardLogger)
	user := seedUser(t, repo, "bob@example.com", "hunter2", domain.RoleSupplierOwner)
	sessions.active[user.ID] = "existing-session"

	_, err := svc.Login(context.Background(), ports.LoginInput{Email: "bob@example.com", Password: "hunter2"})
	if !errors.Is(err, domain.ErrConflictingSession) {
		t.Fatalf("expected ErrConflictingSession, got %v", err)
	}
	if sessions.active[user.ID] != "existing-session" {
		t.Error("rejected login must not replace the live session")
	}
}

func TestAuthService_Login_ForceReplacesSession(t *testing.T) {
	repo := newStubAuthRepo()
	sessions := newStubSessionRegistry()
	svc := NewAuthService(repo, sessions, "secret", time.Hour, discardLogger)
	user := seedUser(t, repo, "bob@example.com", "hunter2", domain.RoleSupplierOwner)
	sessions.active[user.ID] = "existing-session"

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "bob@example.com", Password: "hunter2", Force: true})
	if err != nil {
		t.Fatalf("forced login must succeed, got %v", err)
	}
	if sessions.active[user.ID] == "existing-session" {
		t.Error("forced login must replace the live session")
	}
	if result.Token == "" {
		t.Error("forced login must mint a token")
	}
}

func TestAuthService_Login_RegistryOutageDoesNotBlock(t *testing.T) {
	repo := newStubAuthRepo()
	sessions := newStubSessionRegistry()
	sessions.getErr = errors.New("redis down")
	svc := NewAuthService(repo, sessions, "secret", time.Hour, discardLogger)
	seedUser(t, repo, "bob@example.com", "hunter2", domain.RoleSupplierOwner)

	if _, err := svc.Login(context.Background(), ports.LoginInput{Email: "bob@example.com", Password: "hunter2"}); err != nil {
		t.Fatalf("registry outage must not block login, got %v", err)
	}
}

func TestAuthService_TokenCarriesSessionRecord(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubSessionRegistry(), "secret", time.Hour, discardLogger)
	user := seedUser(t, repo, "staff@example.com", "pw", domain.RoleCustomerStaff)
	user.AllowedScreens = []string{"/", "/orders"}
	repo.byEmail[user.Email].AllowedScreens = user.AllowedScreens

	result, err := svc.Login(context.Background(), ports.LoginInput{Email: "staff@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("token parse: %v", err)
	}
	if claims["role"] != string(domain.RoleCustomerStaff) {
		t.Errorf("claims missing role: %v", claims)
	}
	if claims["company_id"] != user.CompanyID {
		t.Errorf("claims missing company: %v", claims)
	}
	screens, ok := claims["allowed_screens"].([]interface{})
	if !ok || len(screens) != 2 {
		t.Errorf("claims missing allowed screens: %v", claims["allowed_screens"])
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	repo := newStubAuthRepo()
	sessions := newStubSessionRegistry()
	svc := NewAuthService(repo, sessions, "secret", time.Hour, discardLogger)
	sessions.active["u1"] = "s1"

	if err := svc.Logout(context.Background(), "u1"); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if sessions.active["u1"] != "" {
		t.Error("logout must revoke the live session")
	}
}
