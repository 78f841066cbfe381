package ports

import (
	"context"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// NotificationRepository persists per-user notifications.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListUnread(ctx context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead flips the notification to read. Returns
	// domain.ErrNotificationNotFound when the id does not belong to the user.
	MarkRead(ctx context.Context, userID, id string) error
}

// UnreadPage is one page of unread notifications with the authoritative count.
type UnreadPage struct {
	Items []*domain.Notification
	Total int64
	Page  int
	Limit int
}

// NotificationService keeps every badge surface on the authoritative unread
// count. MarkRead persists first and broadcasts one read event on success;
// subscribers re-query the count instead of trusting a pushed value.
type NotificationService interface {
	Unread(ctx context.Context, userID string, page, limit int) (*UnreadPage, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	Notify(ctx context.Context, n *domain.Notification) error
	// Subscribe registers a badge surface. The returned cancel func must be
	// called when the surface goes away.
	Subscribe() (<-chan domain.ReadEvent, func())
}
