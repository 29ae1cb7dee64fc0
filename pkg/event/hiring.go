package event

import "time"

const (
	HiringTopic               = "hiring.requests"
	EventHiringRequestCreated = "hiring.request.created"
	EventHiringRequestUpdated = "hiring.request.updated"
)

// HiringRequestEvent is published when a courier applies to a restaurant
// or a restaurant decides on an application.
type HiringRequestEvent struct {
	EventType      string    `json:"event_type"`
	OccurredAt     time.Time `json:"occurred_at"`
	RequestID      string    `json:"request_id"`
	CourierID      string    `json:"courier_id"`
	CourierName    string    `json:"courier_name,omitempty"`
	RestaurantID   string    `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	Status         string    `json:"status"`
}
