package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/event"
)

// EventSubscriber is the fan-in side: every other service publishes
// NotificationEvents, this subscriber persists them and hands them to
// the hub for live delivery.
type EventSubscriber struct {
	subscriber events.Subscriber
	repo       NotificationRepo
	hub        *Hub
	logger     apt.Logger
}

func NewEventSubscriber(sub events.Subscriber, repo NotificationRepo, hub *Hub, logger apt.Logger) *EventSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &EventSubscriber{
		subscriber: sub,
		repo:       repo,
		hub:        hub,
		logger:     logger,
	}
}

func (s *EventSubscriber) Start(ctx context.Context) error {
	s.log().Info("starting notification event subscriber", "topic", event.NotificationsTopic)
	if s.subscriber == nil {
		return fmt.Errorf("notification event subscriber not configured")
	}
	return s.subscriber.Subscribe(ctx, event.NotificationsTopic, s.handleEvent)
}

func (s *EventSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.NotificationEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.log().Info("invalid notification event", "error", err)
		return nil
	}

	if evt.EventType != event.EventNotificationCreated {
		s.log().Debug("unknown notification event type", "event_type", evt.EventType)
		return nil
	}

	recipientID, err := uuid.Parse(evt.RecipientID)
	if err != nil {
		s.log().Info("invalid recipient id in event", "recipient_id", evt.RecipientID)
		return nil
	}

	n := NewNotification()
	n.RecipientID = recipientID
	n.Type = evt.Type
	n.Title = evt.Title
	n.Message = evt.Message
	n.ActionTarget = evt.ActionTarget
	n.Priority = evt.Priority
	if n.Priority == "" {
		n.Priority = PriorityFor(evt.Type)
	}
	if !evt.OccurredAt.IsZero() {
		n.CreatedAt = evt.OccurredAt
	} else {
		n.CreatedAt = time.Now()
	}
	n.BeforeCreate()

	if err := s.repo.Create(ctx, n); err != nil {
		s.log().Error("cannot persist notification", "error", err, "recipient_id", recipientID)
		return err
	}

	if s.hub != nil {
		s.hub.Broadcast(evt)
	}

	s.log().Info("notification stored",
		"notification_id", n.ID,
		"recipient_id", recipientID,
		"type", n.Type,
	)

	return nil
}

func (s *EventSubscriber) log() apt.Logger {
	return s.logger.With("component", "EventSubscriber")
}
