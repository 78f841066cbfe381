package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionRegistry tracks the single active session per user. Keys expire with
// the token, so a crashed client never wedges its user out: the stale entry
// ages away on its own.
type SessionRegistry struct {
	client *redis.Client
}

func NewSessionRegistry(client *redis.Client) *SessionRegistry {
	return &SessionRegistry{client: client}
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

// Active returns the user's current session id, or "" when none is recorded.
func (r *SessionRegistry) Active(ctx context.Context, userID string) (string, error) {
	sid, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}
	return sid, nil
}

// Put records the session id as the user's active session for the ttl.
// An existing entry is replaced.
func (r *SessionRegistry) Put(ctx context.Context, userID, sessionID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, sessionKey(userID), sessionID, ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Delete removes the user's active session entry.
func (r *SessionRegistry) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
