// Package fanout broadcasts notification read events to every mounted badge
// surface. Delivery is non-blocking: a surface that falls behind misses an
// event and reconciles on the next one, which is safe because subscribers
// re-query the authoritative count instead of applying deltas.
package fanout

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

const subscriberBuffer = 16

// Hub is a process-wide broadcast channel for read events.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan domain.ReadEvent
	next int
	log  zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{subs: make(map[int]chan domain.ReadEvent), log: log}
}

// Subscribe registers a surface. The returned cancel func unregisters it and
// closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan domain.ReadEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan domain.ReadEvent, subscriberBuffer)
	h.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Broadcast delivers the event to every subscriber without blocking.
func (h *Hub) Broadcast(event domain.ReadEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subs {
		select {
		case ch <- event:
		default:
			h.log.Debug().Int("subscriber", id).Msg("slow subscriber, read event dropped")
		}
	}
}

// Len reports the current subscriber count.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
