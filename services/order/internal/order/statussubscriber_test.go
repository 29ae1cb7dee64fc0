package order

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/event"
)

func TestStatusSubscriberHandleStatusChange(t *testing.T) {
	repo := NewMockOrderRepo()
	o := NewOrder()
	o.BeforeCreate()
	_ = repo.Create(context.Background(), o)

	sub := NewStatusSubscriber(nil, repo, nil)

	courierID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440060")
	evt := event.OrderStatusChangedEvent{
		EventType:   event.EventOrderStatusChanged,
		OccurredAt:  time.Now().UTC(),
		OrderID:     o.ID.String(),
		OldStatus:   "pending",
		NewStatus:   "out_for_delivery",
		CourierID:   courierID.String(),
		CourierName: "Sam Porter",
	}
	payload, _ := json.Marshal(evt)

	if err := sub.handleEvent(context.Background(), payload); err != nil {
		t.Fatalf("handleEvent() error = %v", err)
	}

	updated, _ := repo.Get(context.Background(), o.ID)
	if updated.Status != "out_for_delivery" {
		t.Errorf("order status = %q, want %q", updated.Status, "out_for_delivery")
	}
	if updated.CourierID == nil || *updated.CourierID != courierID {
		t.Error("courier should be assigned from the event")
	}
	if updated.CourierName != "Sam Porter" {
		t.Errorf("courier name = %q, want %q", updated.CourierName, "Sam Porter")
	}
}

func TestStatusSubscriberIgnoresUnknownStatus(t *testing.T) {
	repo := NewMockOrderRepo()
	o := NewOrder()
	o.BeforeCreate()
	_ = repo.Create(context.Background(), o)

	sub := NewStatusSubscriber(nil, repo, nil)

	evt := event.OrderStatusChangedEvent{
		EventType: event.EventOrderStatusChanged,
		OrderID:   o.ID.String(),
		NewStatus: "teleported",
	}
	payload, _ := json.Marshal(evt)

	if err := sub.handleEvent(context.Background(), payload); err != nil {
		t.Fatalf("handleEvent() error = %v", err)
	}

	updated, _ := repo.Get(context.Background(), o.ID)
	if updated.Status != "pending" {
		t.Errorf("order status = %q, want it unchanged at %q", updated.Status, "pending")
	}
}

func TestStatusSubscriberToleratesBadInput(t *testing.T) {
	sub := NewStatusSubscriber(nil, NewMockOrderRepo(), nil)

	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "malformedJSON", payload: []byte("{not json")},
		{name: "missingOrderID", payload: mustMarshal(t, event.OrderStatusChangedEvent{EventType: event.EventOrderStatusChanged, NewStatus: "accepted"})},
		{name: "invalidOrderID", payload: mustMarshal(t, event.OrderStatusChangedEvent{EventType: event.EventOrderStatusChanged, OrderID: "nope", NewStatus: "accepted"})},
		{name: "unknownOrder", payload: mustMarshal(t, event.OrderStatusChangedEvent{EventType: event.EventOrderStatusChanged, OrderID: uuid.New().String(), NewStatus: "accepted"})},
		{name: "createdEventIsNoop", payload: mustMarshal(t, event.OrderStatusChangedEvent{EventType: event.EventOrderCreated, OrderID: uuid.New().String()})},
		{name: "unknownEventType", payload: mustMarshal(t, event.OrderStatusChangedEvent{EventType: "orders.exploded"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sub.handleEvent(context.Background(), tt.payload); err != nil {
				t.Errorf("handleEvent() error = %v, want nil", err)
			}
		})
	}
}

func TestStatusSubscriberStartWithoutSubscriber(t *testing.T) {
	sub := NewStatusSubscriber(nil, NewMockOrderRepo(), nil)

	if err := sub.Start(context.Background()); err == nil {
		t.Error("Start() without a subscriber should fail")
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("cannot marshal fixture: %v", err)
	}
	return payload
}
