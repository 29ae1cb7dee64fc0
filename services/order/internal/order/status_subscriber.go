package order

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/event"
)

// StatusSubscriber applies order status changes pushed by the kitchen and
// courier collaborators. The Order service itself never advances an order
// past acceptance; everything downstream arrives as events.
type StatusSubscriber struct {
	subscriber events.Subscriber
	orderRepo  OrderRepo
	logger     apt.Logger
}

func NewStatusSubscriber(sub events.Subscriber, orderRepo OrderRepo, logger apt.Logger) *StatusSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &StatusSubscriber{
		subscriber: sub,
		orderRepo:  orderRepo,
		logger:     logger,
	}
}

func (s *StatusSubscriber) Start(ctx context.Context) error {
	s.log().Info("starting order status subscriber", "topic", event.OrdersTopic)
	if s.subscriber == nil {
		return fmt.Errorf("order status subscriber not configured")
	}
	return s.subscriber.Subscribe(ctx, event.OrdersTopic, s.handleEvent)
}

func (s *StatusSubscriber) handleEvent(ctx context.Context, msg []byte) error {
	var metadata event.OrderEventMetadata
	if err := json.Unmarshal(msg, &metadata); err != nil {
		s.log().Info("invalid order event", "error", err)
		return nil
	}

	switch metadata.EventType {
	case event.EventOrderStatusChanged:
		return s.handleStatusChange(ctx, msg)
	case event.EventOrderCreated:
		// Creation originated here; nothing to sync.
		return nil
	default:
		s.log().Debug("unknown order event type", "event_type", metadata.EventType)
		return nil
	}
}

func (s *StatusSubscriber) handleStatusChange(ctx context.Context, msg []byte) error {
	var evt event.OrderStatusChangedEvent
	if err := json.Unmarshal(msg, &evt); err != nil {
		s.log().Info("invalid status change event", "error", err)
		return nil
	}

	if evt.OrderID == "" {
		s.logger.Debug("status change event missing order_id")
		return nil
	}

	orderID, err := uuid.Parse(evt.OrderID)
	if err != nil {
		s.logger.Info("invalid order_id in event", "order_id", evt.OrderID)
		return nil
	}

	o, err := s.orderRepo.Get(ctx, orderID)
	if err != nil || o == nil {
		s.logger.Info("cannot find order for status event", "order_id", orderID, "error", err)
		return nil
	}

	oldStatus := o.Status
	if !o.SetStatus(evt.NewStatus) {
		s.logger.Debug("ignoring unknown status from event", "status", evt.NewStatus)
		return nil
	}

	if evt.CourierID != "" && o.CourierID == nil {
		if courierID, parseErr := uuid.Parse(evt.CourierID); parseErr == nil {
			o.AssignCourier(courierID, evt.CourierName)
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.logger.Info("failed to update order status", "order_id", orderID, "error", err)
		return err
	}

	s.logger.Info("order status updated from event",
		"order_id", orderID,
		"old_status", oldStatus,
		"new_status", o.Status,
	)

	return nil
}

func (s *StatusSubscriber) log() apt.Logger {
	return s.logger.With("component", "StatusSubscriber")
}
