package ports

import (
	"context"
	"time"
)

// SessionRegistry tracks the single live session per user. Backed by Redis
// with token-TTL expiry; losing a registry entry simply means the next login
// proceeds without a conflict prompt.
type SessionRegistry interface {
	// Active returns the live session id for the user, or "" when none.
	Active(ctx context.Context, userID string) (string, error)
	// Put records sessionID as the user's live session for ttl.
	Put(ctx context.Context, userID, sessionID string, ttl time.Duration) error
	// Delete revokes the user's live session.
	Delete(ctx context.Context, userID string) error
}
