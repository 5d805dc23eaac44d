package realtime

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/internal/util"
)

// subscriberBuffer sizes each session's event queue. A session that falls
// further behind than this loses events; delivery is at-most-once and the
// next full refetch reconciles.
const subscriberBuffer = 16

// Hub broadcasts domain events to every connected session. Fire-and-forget:
// no persistence, no redelivery. Sessions offline at publish time miss the
// event permanently.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]chan domain.Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan domain.Event)}
}

// Subscribe registers a new session and returns its connection id and
// event channel.
func (h *Hub) Subscribe() (string, <-chan domain.Event) {
	id := uuid.New().String()
	ch := make(chan domain.Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a session and closes its channel. Unknown ids are
// ignored so disconnect paths can call it unconditionally.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish delivers an event to all connected sessions. Non-blocking: a
// lagging session's event is dropped rather than stalling the broadcast.
// Each subscriber channel preserves publish order for the events it receives.
func (h *Hub) Publish(ev domain.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			util.Logger.Warn("dropping event for slow subscriber",
				zap.String("conn", id),
				zap.String("event", string(ev.Type())))
		}
	}
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
