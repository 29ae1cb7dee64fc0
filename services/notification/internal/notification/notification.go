package notification

import (
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

type Notification struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	RecipientID  uuid.UUID `json:"recipient_id" bson:"recipient_id"`
	Type         string    `json:"type" bson:"type"`
	Title        string    `json:"title" bson:"title"`
	Message      string    `json:"message" bson:"message"`
	Read         bool      `json:"read" bson:"read"`
	ActionTarget string    `json:"action_target,omitempty" bson:"action_target,omitempty"`
	Priority     string    `json:"priority,omitempty" bson:"priority,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

func (n *Notification) GetID() uuid.UUID {
	return n.ID
}

func (n *Notification) ResourceType() string {
	return "notification"
}

func (n *Notification) SetID(id uuid.UUID) {
	n.ID = id
}

func NewNotification() *Notification {
	return &Notification{
		ID: apt.GenerateNewID(),
	}
}

func (n *Notification) EnsureID() {
	if n.ID == uuid.Nil {
		n.ID = apt.GenerateNewID()
	}
}

func (n *Notification) BeforeCreate() {
	n.EnsureID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	n.UpdatedAt = time.Now()
}

func (n *Notification) BeforeUpdate() {
	n.UpdatedAt = time.Now()
}

// MarkAsRead flips the read flag. Returns false when already read so the
// caller can skip the store write; marking twice is not an error.
func (n *Notification) MarkAsRead() bool {
	if n.Read {
		return false
	}
	n.Read = true
	n.UpdatedAt = time.Now()
	return true
}

// Presentation hints for notification types. Unknown types fall through
// to the bell with normal priority so a new producer never breaks the
// client list.
var typePresentation = map[string]struct {
	Icon     string
	Priority string
}{
	"order.status":   {Icon: "package", Priority: "normal"},
	"order.problem":  {Icon: "alert-triangle", Priority: "high"},
	"hiring":         {Icon: "briefcase", Priority: "normal"},
	"report":         {Icon: "flag", Priority: "normal"},
	"account":        {Icon: "user", Priority: "normal"},
	"welcome":        {Icon: "party-popper", Priority: "normal"},
	"system":         {Icon: "info", Priority: "low"},
	"payment.failed": {Icon: "credit-card", Priority: "high"},
}

func IconFor(notificationType string) string {
	if p, ok := typePresentation[notificationType]; ok {
		return p.Icon
	}
	return "bell"
}

func PriorityFor(notificationType string) string {
	if p, ok := typePresentation[notificationType]; ok {
		return p.Priority
	}
	return "normal"
}

// RelativeTime renders a timestamp the way the notification list shows
// it: "now" under a minute, then minutes, hours, days, and an absolute
// date past a week.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
