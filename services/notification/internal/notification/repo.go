package notification

import (
	"context"

	"github.com/google/uuid"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id uuid.UUID) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*Notification, error)
	ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*Notification, error)
	Save(ctx context.Context, n *Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}
