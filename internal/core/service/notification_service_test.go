package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/infrastructure/fanout"
)

type stubNotificationRepo struct {
	byUser  map[string][]*domain.Notification
	markErr error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{byUser: make(map[string][]*domain.Notification)}
}

func (r *stubNotificationRepo) Insert(_ context.Context, n *domain.Notification) error {
	clone := *n
	r.byUser[n.UserID] = append(r.byUser[n.UserID], &clone)
	return nil
}

func (r *stubNotificationRepo) ListUnread(_ context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error) {
	var unread []*domain.Notification
	for _, n := range r.byUser[userID] {
		if !n.Read {
			clone := *n
			unread = append(unread, &clone)
		}
	}
	total := int64(len(unread))
	start := (page - 1) * limit
	if start > len(unread) {
		start = len(unread)
	}
	end := start + limit
	if end > len(unread) {
		end = len(unread)
	}
	return unread[start:end], total, nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range r.byUser[userID] {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	if r.markErr != nil {
		return r.markErr
	}
	for _, n := range r.byUser[userID] {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func seedNotifications(t *testing.T, svc *NotificationService, userID string, count int) []string {
	t.Helper()
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := &domain.Notification{UserID: userID, Title: "Quote received", Body: "A supplier responded"}
		if err := svc.Notify(context.Background(), n); err != nil {
			t.Fatalf("seed notification: %v", err)
		}
		ids = append(ids, n.ID)
	}
	return ids
}

func TestNotificationService_Notify_FillsDefaults(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := NewNotificationService(repo, fanout.NewHub(discardLogger), discardLogger)

	n := &domain.Notification{UserID: "u1", Title: "Order cancelled"}
	if err := svc.Notify(context.Background(), n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID == "" {
		t.Error("id must be generated")
	}
	if n.CreatedAt.IsZero() {
		t.Error("created_at must be stamped")
	}
}

func TestNotificationService_MarkRead_BroadcastsAfterWrite(t *testing.T) {
	repo := newStubNotificationRepo()
	hub := fanout.NewHub(discardLogger)
	svc := NewNotificationService(repo, hub, discardLogger)
	ids := seedNotifications(t, svc, "u1", 1)

	events, cancel := svc.Subscribe()
	defer cancel()

	if err := svc.MarkRead(context.Background(), "u1", ids[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-events:
		if ev.UserID != "u1" || ev.NotificationID != ids[0] {
			t.Errorf("wrong event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a read event")
	}

	count, err := svc.UnreadCount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 unread after mark, got %d", count)
	}
}

// A failed write broadcasts nothing; surfaces keep the server count.
func TestNotificationService_MarkRead_FailedWriteStaysSilent(t *testing.T) {
	repo := newStubNotificationRepo()
	hub := fanout.NewHub(discardLogger)
	svc := NewNotificationService(repo, hub, discardLogger)
	ids := seedNotifications(t, svc, "u1", 1)
	repo.markErr = errors.New("write timeout")

	events, cancel := svc.Subscribe()
	defer cancel()

	if err := svc.MarkRead(context.Background(), "u1", ids[0]); err == nil {
		t.Fatal("expected an error")
	}

	select {
	case ev := <-events:
		t.Fatalf("no event expected after a failed write, got %+v", ev)
	default:
	}
}

func TestNotificationService_MarkRead_EverySubscriberHearsIt(t *testing.T) {
	repo := newStubNotificationRepo()
	hub := fanout.NewHub(discardLogger)
	svc := NewNotificationService(repo, hub, discardLogger)
	ids := seedNotifications(t, svc, "u1", 1)

	first, cancelFirst := svc.Subscribe()
	defer cancelFirst()
	second, cancelSecond := svc.Subscribe()
	defer cancelSecond()

	if err := svc.MarkRead(context.Background(), "u1", ids[0]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, ch := range []<-chan domain.ReadEvent{first, second} {
		select {
		case ev := <-ch:
			if ev.NotificationID != ids[0] {
				t.Errorf("wrong event: %+v", ev)
			}
		case <-time.After(time.Second):
			t.Fatal("every subscriber must receive the event")
		}
	}
}

func TestNotificationService_Unread_Pagination(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := NewNotificationService(repo, fanout.NewHub(discardLogger), discardLogger)
	seedNotifications(t, svc, "u1", 5)

	page, err := svc.Unread(context.Background(), "u1", 2, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 5 || len(page.Items) != 2 || page.Page != 2 {
		t.Errorf("unexpected page: total=%d items=%d page=%d", page.Total, len(page.Items), page.Page)
	}

	clamped, err := svc.Unread(context.Background(), "u1", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clamped.Page != 1 || clamped.Limit != 20 {
		t.Errorf("defaults must apply: page=%d limit=%d", clamped.Page, clamped.Limit)
	}
}
