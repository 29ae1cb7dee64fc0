package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/event"
)

// SSEHandler streams report events to the admin triage board. The board
// refetches the full list on every event; the stream carries no state of
// its own, so there is no replay.
type SSEHandler struct {
	hub    *Hub
	logger apt.Logger
}

func NewSSEHandler(hub *Hub, logger apt.Logger) *SSEHandler {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &SSEHandler{
		hub:    hub,
		logger: logger,
	}
}

func (h *SSEHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	subscriberID := uuid.New().String()
	h.logger.Info("new triage SSE connection", "subscriber_id", subscriberID)

	eventChan := h.hub.Subscribe(subscriberID)
	defer h.hub.Unsubscribe(subscriberID)

	fmt.Fprintf(w, ": connected\n\n")
	fmt.Fprintf(w, "retry: 2000\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("triage SSE client disconnected", "subscriber_id", subscriberID)
			return

		case <-ticker.C:
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}

		case evt, ok := <-eventChan:
			if !ok {
				h.logger.Info("report event channel closed", "subscriber_id", subscriberID)
				return
			}
			h.sendEvent(w, evt)
		}
	}
}

func (h *SSEHandler) sendEvent(w http.ResponseWriter, evt event.ReportEvent) {
	payload, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("cannot marshal report event", "error", err)
		return
	}

	fmt.Fprintf(w, "event: report\n")
	fmt.Fprintf(w, "data: %s\n\n", payload)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
