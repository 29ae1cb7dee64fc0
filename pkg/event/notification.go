package event

import "time"

const (
	NotificationsTopic       = "notifications.events"
	EventNotificationCreated = "notification.created"
)

// NotificationEvent is the fan-in payload other services publish when
// something happens a user should hear about. The Notification service
// persists it and pushes it to connected clients.
type NotificationEvent struct {
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	RecipientID  string    `json:"recipient_id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Message      string    `json:"message"`
	ActionTarget string    `json:"action_target,omitempty"`
	Priority     string    `json:"priority,omitempty"`
}
