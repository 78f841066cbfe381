package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// AuthService implements registration, login with single-active-session
// enforcement, and logout.
type AuthService struct {
	repo      ports.AuthRepository
	sessions  ports.SessionRegistry
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, sessions ports.SessionRegistry, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, sessions: sessions, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	companyID := input.CompanyID
	if companyID == "" && !role.IsOperator() {
		// Owners anchor their own company; staff must name one explicitly.
		if role.IsStaff() {
			return nil, fmt.Errorf("register: %w: staff account requires a company", domain.ErrInvalidCredentials)
		}
		companyID = uuid.NewString()
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uuid.NewString(),
		CompanyID:      companyID,
		Name:           input.Name,
		Email:          input.Email,
		PasswordHash:   string(hash),
		Role:           role,
		AllowedScreens: input.AllowedScreens,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("account registered")
	return created, nil
}

// Login authenticates and mints a session token. When the session registry
// already holds a live session for the user, the login is rejected with
// ErrConflictingSession unless input.Force confirms the replacement.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !input.Force {
		active, err := s.sessions.Active(ctx, user.ID)
		if err != nil {
			// Registry outage must not lock users out.
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("session registry unavailable, skipping conflict check")
		} else if active != "" {
			return nil, domain.ErrConflictingSession
		}
	}

	sessionID := uuid.NewString()
	token, err := s.generateToken(user, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Put(ctx, user.ID, sessionID, s.tokenTTL); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record session")
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return &ports.LoginResult{Token: token, Actor: user.Actor()}, nil
}

// Logout revokes the user's live session. The token itself expires on its
// own; revoking the registry entry is what frees the next login from the
// conflict prompt.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.Delete(ctx, userID)
}

// generateToken embeds the full session record in the claims so the auth
// middleware can rebuild the Actor without a database round trip.
func (s *AuthService) generateToken(user *domain.User, sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID,
		"sid":        sessionID,
		"name":       user.Name,
		"role":       string(user.Role),
		"company_id": user.CompanyID,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}
	if len(user.AllowedScreens) > 0 {
		claims["allowed_screens"] = user.AllowedScreens
	}
	if user.Subscription != nil {
		claims["sub_status"] = string(user.Subscription.Status)
		if !user.Subscription.ExpiresAt.IsZero() {
			claims["sub_expires"] = user.Subscription.ExpiresAt.Unix()
		}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
