package event

import "time"

const (
	OrdersTopic             = "orders.status"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEventMetadata carries only the event type so subscribers can
// dispatch before decoding the full payload.
type OrderEventMetadata struct {
	EventType string `json:"event_type"`
}

// OrderStatusChangedEvent is published when a kitchen or courier
// collaborator advances an order. The Order service consumes it to keep
// the stored order in sync; the Notification service consumes it to
// notify the customer.
type OrderStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	OldStatus  string    `json:"old_status,omitempty"`
	NewStatus  string    `json:"new_status"`

	// Denormalized data for display without extra lookups
	RestaurantID   string `json:"restaurant_id,omitempty"`
	RestaurantName string `json:"restaurant_name,omitempty"`
	CourierID      string `json:"courier_id,omitempty"`
	CourierName    string `json:"courier_name,omitempty"`
	CustomerID     string `json:"customer_id,omitempty"`
}
