package report

import (
	"sync"

	"github.com/appetiteclub/apt"

	"github.com/mealmesh/mealmesh/pkg/event"
)

// Hub fans report events out to every connected triage board. No
// per-subscriber filtering: the board is admin-only and each event tells
// it to refetch the whole list.
type Hub struct {
	logger apt.Logger

	mu          sync.RWMutex
	subscribers map[string]chan event.ReportEvent
}

func NewHub(logger apt.Logger) *Hub {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Hub{
		logger:      logger,
		subscribers: make(map[string]chan event.ReportEvent),
	}
}

func (h *Hub) Subscribe(subscriberID string) <-chan event.ReportEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan event.ReportEvent, 100)
	h.subscribers[subscriberID] = ch

	h.logger.Info("new triage board subscriber", "subscriber_id", subscriberID, "total_subscribers", len(h.subscribers))

	return ch
}

func (h *Hub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[subscriberID]; ok {
		close(ch)
		delete(h.subscribers, subscriberID)
		h.logger.Info("triage board subscriber disconnected", "subscriber_id", subscriberID, "total_subscribers", len(h.subscribers))
	}
}

// Broadcast delivers an event to every board. A full channel means the
// board is too slow; the event is dropped for that board only, which is
// fine because the next event triggers the same refetch.
func (h *Hub) Broadcast(evt event.ReportEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for subscriberID, ch := range h.subscribers {
		select {
		case ch <- evt:
		default:
			h.logger.Info("subscriber channel full, dropping event", "subscriber_id", subscriberID)
		}
	}
}

// SubscriberCount reports how many boards are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Close drops every subscriber. Used at shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		close(ch)
		delete(h.subscribers, id)
	}
}
