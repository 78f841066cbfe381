package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":             "user_1",
		"sid":             "sess_1",
		"name":            "Alice",
		"role":            "CUSTOMER_STAFF",
		"company_id":      "acme",
		"allowed_screens": []string{"/products", "/cart"},
		"sub_status":      "APPROVED",
		"sub_expires":     float64(time.Now().Add(time.Hour).Unix()),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		called = true
		actor := ActorFrom(c)
		if actor == nil {
			t.Fatal("actor not set")
		}
		if actor.ID != "user_1" || actor.CompanyID != "acme" {
			t.Fatalf("wrong identity: %+v", actor)
		}
		if actor.Role != domain.RoleCustomerStaff {
			t.Fatalf("wrong role: %s", actor.Role)
		}
		if len(actor.AllowedScreens) != 2 || actor.AllowedScreens[0] != "/products" {
			t.Fatalf("allowed screens not rebuilt: %v", actor.AllowedScreens)
		}
		if actor.Subscription == nil || actor.Subscription.Status != domain.SubscriptionApproved {
			t.Fatalf("subscription not rebuilt: %+v", actor.Subscription)
		}
		if actor.Subscription.ExpiresAt.IsZero() {
			t.Fatal("subscription expiry not rebuilt")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthMiddleware_NoSubscriptionClaim(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{
		"sub":  "user_1",
		"role": "ADMIN",
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		if actor := ActorFrom(c); actor.Subscription != nil {
			t.Fatalf("no subscription claim must mean nil subscription, got %+v", actor.Subscription)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "other-secret", jwt.MapClaims{"sub": "user_1", "role": "ADMIN"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Auth("secret")
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestOptionalAuth_AnonymousPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := OptionalAuth("secret")
	handler := mw(func(c echo.Context) error {
		called = true
		if ActorFrom(c) != nil {
			t.Fatal("anonymous request must carry no actor")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestOptionalAuth_ValidTokenSetsActor(t *testing.T) {
	e := echo.New()
	signed := signToken(t, "secret", jwt.MapClaims{"sub": "user_1", "role": "CUSTOMER_OWNER"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := OptionalAuth("secret")
	handler := mw(func(c echo.Context) error {
		actor := ActorFrom(c)
		if actor == nil || actor.Role != domain.RoleCustomerOwner {
			t.Fatalf("actor not rebuilt: %+v", actor)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
