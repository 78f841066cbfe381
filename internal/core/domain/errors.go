package domain

import "errors"

// Sentinel errors form the engine's failure taxonomy. The HTTP layer maps
// each to a deterministic status code; nothing in the core swallows a
// transition failure into a misleading success.
var (
	// ErrUnauthenticated means no or expired session; routes to login.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnauthorized means the capability set excludes the screen or action.
	ErrUnauthorized = errors.New("not authorized")
	// ErrPreconditionFailed means an illegal state transition was requested.
	// The caller must re-fetch authoritative state and retry.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrConflictingSession means the server already holds a live session for
	// this user; login must be retried with an explicit replace confirmation.
	ErrConflictingSession = errors.New("conflicting active session")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrEmptyCart         = errors.New("cart is empty")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrSupplierImmutable = errors.New("cart item supplier cannot change; remove and re-add")

	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderLineNotFound    = errors.New("order line not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category already exists")
)
