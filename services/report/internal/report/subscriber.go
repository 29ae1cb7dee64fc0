package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/mealmesh/mealmesh/pkg/event"
)

// EventSubscriber relays report events from the bus to the local hub so
// every replica's boards refresh, not only the one that handled the
// triggering request.
type EventSubscriber struct {
	subscriber events.Subscriber
	hub        *Hub
	logger     apt.Logger
}

func NewEventSubscriber(sub events.Subscriber, hub *Hub, logger apt.Logger) *EventSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &EventSubscriber{
		subscriber: sub,
		hub:        hub,
		logger:     logger,
	}
}

func (s *EventSubscriber) Start(ctx context.Context) error {
	s.log().Info("starting report event subscriber", "topic", event.ReportsTopic)
	if s.subscriber == nil {
		return fmt.Errorf("report event subscriber not configured")
	}
	return s.subscriber.Subscribe(ctx, event.ReportsTopic, s.handleEvent)
}

func (s *EventSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var meta event.ReportEventMetadata
	if err := json.Unmarshal(msg, &meta); err != nil {
		s.log().Info("invalid report event", "error", err)
		return nil
	}

	switch meta.EventType {
	case event.EventReportSubmitted, event.EventReportStatusChanged:
	default:
		s.log().Debug("unknown report event type", "event_type", meta.EventType)
		return nil
	}

	var evt event.ReportEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.log().Info("invalid report event payload", "error", err)
		return nil
	}

	if s.hub != nil {
		s.hub.Broadcast(evt)
	}
	return nil
}

func (s *EventSubscriber) log() apt.Logger {
	return s.logger.With("component", "EventSubscriber")
}
