package domain

import (
	"strings"
	"time"
)

// Role is the closed set of actor roles in the portal.
type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleAdmin         Role = "ADMIN"
	RoleCustomerOwner Role = "CUSTOMER_OWNER"
	RoleCustomerStaff Role = "CUSTOMER_STAFF"
	RoleSupplierOwner Role = "SUPPLIER_OWNER"
	RoleSupplierStaff Role = "SUPPLIER_STAFF"
)

// ParseRole normalizes a server-issued role string to a Role.
// Unknown input returns ErrUnknownRole; callers that resolve capabilities
// treat that as the minimal fallback rather than a hard failure.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCustomerOwner:
		return RoleCustomerOwner, nil
	case RoleCustomerStaff:
		return RoleCustomerStaff, nil
	case RoleSupplierOwner:
		return RoleSupplierOwner, nil
	case RoleSupplierStaff:
		return RoleSupplierStaff, nil
	}
	return "", ErrUnknownRole
}

// IsStaff reports whether the role is a sub-account of an owner role.
func (r Role) IsStaff() bool {
	return r == RoleCustomerStaff || r == RoleSupplierStaff
}

// IsOwner reports whether the role carries a company subscription.
func (r Role) IsOwner() bool {
	return r == RoleCustomerOwner || r == RoleSupplierOwner
}

// IsOperator reports whether the role belongs to the admin tier.
func (r Role) IsOperator() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// OwnerEquivalent maps a staff role to the owner role whose capability set
// bounds it. Non-staff roles map to themselves.
func (r Role) OwnerEquivalent() Role {
	switch r {
	case RoleCustomerStaff:
		return RoleCustomerOwner
	case RoleSupplierStaff:
		return RoleSupplierOwner
	}
	return r
}

// Subscription status values as issued by the operator tier. An empty status
// on a present subscription means "grandfathered active".
type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "PENDING"
	SubscriptionApproved SubscriptionStatus = "APPROVED"
	SubscriptionRejected SubscriptionStatus = "REJECTED"
	SubscriptionExpired  SubscriptionStatus = "EXPIRED"
)

// Subscription is the snapshot of a company subscription carried in the
// session record.
type Subscription struct {
	Status    SubscriptionStatus `json:"status"`
	ExpiresAt time.Time          `json:"expires_at,omitempty"`
}

// IsActive reports whether the subscription grants access at the given
// instant. The predicate is time-dependent and must be re-evaluated on every
// access decision, never cached across requests.
func (s *Subscription) IsActive(now time.Time) bool {
	if s == nil {
		return false
	}
	if s.Status != "" && s.Status != SubscriptionApproved {
		return false
	}
	if !s.ExpiresAt.IsZero() && !s.ExpiresAt.After(now) {
		return false
	}
	return true
}

// Actor is the authenticated identity reconstructed from the session record
// on every request. It is created at login and replaced wholesale on
// re-login; AllowedScreens is meaningful only for staff roles.
type Actor struct {
	ID             string        `json:"id"`
	CompanyID      string        `json:"company_id,omitempty"`
	Name           string        `json:"name"`
	Role           Role          `json:"role"`
	AllowedScreens []string      `json:"allowed_screens,omitempty"`
	Subscription   *Subscription `json:"subscription,omitempty"`
}

// User is the persisted account behind an Actor.
type User struct {
	ID             string
	CompanyID      string
	Name           string
	Email          string
	PasswordHash   string
	Role           Role
	AllowedScreens []string
	Subscription   *Subscription
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Actor derives the session identity from the stored account.
func (u *User) Actor() *Actor {
	return &Actor{
		ID:             u.ID,
		CompanyID:      u.CompanyID,
		Name:           u.Name,
		Role:           u.Role,
		AllowedScreens: u.AllowedScreens,
		Subscription:   u.Subscription,
	}
}
