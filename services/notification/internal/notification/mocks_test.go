package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/appetiteclub/apt/events"
	"github.com/google/uuid"
)

type MockNotificationRepo struct {
	mu            sync.Mutex
	notifications map[uuid.UUID]*Notification

	CreateFunc func(ctx context.Context, n *Notification) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Notification, error)
	SaveFunc   func(ctx context.Context, n *Notification) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockNotificationRepo() *MockNotificationRepo {
	return &MockNotificationRepo{
		notifications: make(map[uuid.UUID]*Notification),
	}
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications[n.ID] = n
	return nil
}

func (m *MockNotificationRepo) Get(ctx context.Context, id uuid.UUID) (*Notification, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifications[id], nil
}

func (m *MockNotificationRepo) ListByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*Notification
	for _, n := range m.notifications {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *MockNotificationRepo) ListUnreadByRecipient(ctx context.Context, recipientID uuid.UUID) ([]*Notification, error) {
	all, err := m.ListByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	var result []*Notification
	for _, n := range all {
		if !n.Read {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *MockNotificationRepo) Save(ctx context.Context, n *Notification) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[n.ID]; !ok {
		return fmt.Errorf("notification not found")
	}
	m.notifications[n.ID] = n
	return nil
}

func (m *MockNotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.notifications[id]; !ok {
		return fmt.Errorf("notification not found")
	}
	delete(m.notifications, id)
	return nil
}

type MockReplayer struct {
	Messages  []events.StreamMessage
	FetchFunc func(ctx context.Context, limit int) ([]events.StreamMessage, error)
}

func (m *MockReplayer) Fetch(ctx context.Context, limit int) ([]events.StreamMessage, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, limit)
	}
	if limit < len(m.Messages) {
		return m.Messages[:limit], nil
	}
	return m.Messages, nil
}
