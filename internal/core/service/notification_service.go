package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/api/metrics"
	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

const maxNotificationPageSize = 100

// Broadcaster is the fanout contract the service publishes read events to.
type Broadcaster interface {
	Subscribe() (<-chan domain.ReadEvent, func())
	Broadcast(event domain.ReadEvent)
}

// NotificationService keeps unread badges consistent across any number of
// surfaces. The persisted store stays authoritative: MarkRead broadcasts
// only after a durable write, and subscribers re-query the count.
type NotificationService struct {
	repo ports.NotificationRepository
	hub  Broadcaster
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, hub Broadcaster, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, hub: hub, log: log}
}

func (s *NotificationService) Unread(ctx context.Context, userID string, page, limit int) (*ports.UnreadPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > maxNotificationPageSize {
		limit = maxNotificationPageSize
	}

	items, total, err := s.repo.ListUnread(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.UnreadPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead persists the flip, then broadcasts exactly one read event. A
// failed write broadcasts nothing, so the badge falls back to the server
// count on its next refresh instead of drifting.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		return err
	}

	metrics.NotificationsReadTotal.Inc()
	s.hub.Broadcast(domain.ReadEvent{UserID: userID, NotificationID: id})
	return nil
}

// Notify persists a new notification for a user. The read-event channel is
// not used for new items; surfaces pick them up on their next count query.
func (s *NotificationService) Notify(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		return err
	}
	s.log.Debug().Str("user_id", n.UserID).Str("notification_id", n.ID).Msg("notification stored")
	return nil
}

func (s *NotificationService) Subscribe() (<-chan domain.ReadEvent, func()) {
	return s.hub.Subscribe()
}
