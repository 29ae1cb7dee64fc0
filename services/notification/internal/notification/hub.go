package notification

import (
	"sync"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/event"
)

// Hub fans notification events out to connected SSE clients. Each
// subscriber filters on its recipient so a browser only sees its own
// notifications.
type Hub struct {
	logger apt.Logger

	mu          sync.RWMutex
	subscribers map[string]hubSubscriber
}

type hubSubscriber struct {
	recipientID uuid.UUID
	ch          chan event.NotificationEvent
}

func NewHub(logger apt.Logger) *Hub {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Hub{
		logger:      logger,
		subscribers: make(map[string]hubSubscriber),
	}
}

// Subscribe registers an SSE client for one recipient and returns its
// event channel.
func (h *Hub) Subscribe(subscriberID string, recipientID uuid.UUID) <-chan event.NotificationEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan event.NotificationEvent, 100)
	h.subscribers[subscriberID] = hubSubscriber{recipientID: recipientID, ch: ch}

	h.logger.Info("new notification subscriber", "subscriber_id", subscriberID, "total_subscribers", len(h.subscribers))

	return ch
}

func (h *Hub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[subscriberID]; ok {
		close(sub.ch)
		delete(h.subscribers, subscriberID)
		h.logger.Info("notification subscriber disconnected", "subscriber_id", subscriberID, "total_subscribers", len(h.subscribers))
	}
}

// Broadcast delivers an event to every subscriber watching its
// recipient. A full channel means the subscriber is too slow; the event
// is dropped for that subscriber only.
func (h *Hub) Broadcast(evt event.NotificationEvent) {
	recipientID, err := uuid.Parse(evt.RecipientID)
	if err != nil {
		h.logger.Debug("dropping event with invalid recipient id", "recipient_id", evt.RecipientID)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for subscriberID, sub := range h.subscribers {
		if sub.recipientID != recipientID {
			continue
		}
		select {
		case sub.ch <- evt:
		default:
			h.logger.Info("subscriber channel full, dropping event", "subscriber_id", subscriberID)
		}
	}
}

// Close drops every subscriber. Used at shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		close(sub.ch)
		delete(h.subscribers, id)
	}
}
