package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/event"
	"github.com/mealmesh/mealmesh/pkg/session"
)

// Replayer supplies recent events so a freshly connected client can
// backfill its list before live pushes start. NATSStream satisfies it.
type Replayer interface {
	Fetch(ctx context.Context, limit int) ([]events.StreamMessage, error)
}

const replayLimit = 50

// SSEHandler streams notifications to the browser. Each connection
// replays recent events for its recipient, then forwards live events
// from the hub with a 30s keepalive.
type SSEHandler struct {
	hub      *Hub
	replayer Replayer
	logger   apt.Logger
}

func NewSSEHandler(hub *Hub, replayer Replayer, logger apt.Logger) *SSEHandler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &SSEHandler{
		hub:      hub,
		replayer: replayer,
		logger:   logger,
	}
}

func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := h.resolveRecipient(r)
	if !ok {
		apt.RespondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	h.logger.Info("new SSE connection", "subscriber_id", subscriberID, "recipient_id", recipientID)

	eventChan := h.hub.Subscribe(subscriberID, recipientID)
	defer h.hub.Unsubscribe(subscriberID)

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	h.replay(r.Context(), w, recipientID)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("SSE client disconnected", "subscriber_id", subscriberID)
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case evt, ok := <-eventChan:
			if !ok {
				h.logger.Info("notification channel closed", "subscriber_id", subscriberID)
				return
			}
			h.sendEvent(w, "notification", evt)
		}
	}
}

// resolveRecipient takes the session user, or the recipient_id param for
// back-office roles watching another user's feed.
func (h *SSEHandler) resolveRecipient(r *http.Request) (uuid.UUID, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}

	if param := r.URL.Query().Get("recipient_id"); param != "" {
		if sess.Role == session.RoleAdmin || sess.Role == session.RoleDeveloper {
			if parsed, err := uuid.Parse(param); err == nil {
				return parsed, true
			}
		}
	}
	return sess.UserID, true
}

// replay backfills recent events for this recipient from the stream.
// Every connection gets the full backfill; filtering to the recipient
// happens here. Replay failures degrade to live-only; the connection
// stays up.
func (h *SSEHandler) replay(ctx context.Context, w http.ResponseWriter, recipientID uuid.UUID) {
	if h.replayer == nil {
		return
	}

	messages, err := h.replayer.Fetch(ctx, replayLimit)
	if err != nil {
		h.logger.Error("cannot replay notification stream", "error", err)
		return
	}

	for _, msg := range messages {
		var evt event.NotificationEvent
		if err := json.Unmarshal(msg.Data, &evt); err != nil {
			continue
		}
		if evt.RecipientID != recipientID.String() {
			continue
		}
		h.sendEvent(w, "notification-replay", evt)
	}
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, eventType string, evt event.NotificationEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal notification event", "error", err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", payload)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
