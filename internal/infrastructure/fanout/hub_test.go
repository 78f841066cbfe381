package fanout

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

func TestHub_BroadcastReachesEverySubscriber(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	first, cancelFirst := hub.Subscribe()
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe()
	defer cancelSecond()

	hub.Broadcast(domain.ReadEvent{UserID: "u1", NotificationID: "n1"})

	for _, ch := range []<-chan domain.ReadEvent{first, second} {
		select {
		case ev := <-ch:
			if ev.NotificationID != "n1" {
				t.Errorf("wrong event: %+v", ev)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestHub_CancelUnsubscribesAndCloses(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	ch, cancel := hub.Subscribe()
	if hub.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", hub.Len())
	}

	cancel()
	cancel() // safe to call twice

	if hub.Len() != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.Len())
	}
	if _, open := <-ch; open {
		t.Error("channel must be closed after cancel")
	}
}

// A subscriber that stops draining loses events instead of stalling the hub.
func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	_, cancel := hub.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Broadcast(domain.ReadEvent{UserID: "u1", NotificationID: "n1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast must never block on a full subscriber")
	}
}
