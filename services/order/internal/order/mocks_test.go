package order

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockPublisher is a mock implementation of events.Publisher for testing
type MockPublisher struct {
	mu        sync.Mutex
	Published [][]byte
	Topics    []string

	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, msg)
	m.Topics = append(m.Topics, topic)
	return nil
}

// MockOrderRepo is a mock implementation of OrderRepo for testing
type MockOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*Order

	CreateFunc     func(ctx context.Context, o *Order) error
	GetFunc        func(ctx context.Context, id uuid.UUID) (*Order, error)
	ListFunc       func(ctx context.Context) ([]*Order, error)
	ListSortedFunc func(ctx context.Context) ([]*Order, error)
	SaveFunc       func(ctx context.Context, o *Order) error
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func NewMockOrderRepo() *MockOrderRepo {
	return &MockOrderRepo{
		orders: make(map[uuid.UUID]*Order),
	}
}

func (m *MockOrderRepo) Create(ctx context.Context, o *Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderRepo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	return o, nil
}

func (m *MockOrderRepo) List(ctx context.Context) ([]*Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*Order, 0, len(m.orders))
	for _, o := range m.orders {
		result = append(result, o)
	}
	return result, nil
}

func (m *MockOrderRepo) ListSorted(ctx context.Context) ([]*Order, error) {
	if m.ListSortedFunc != nil {
		return m.ListSortedFunc(ctx)
	}
	orders, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	SortByNewest(orders)
	return orders, nil
}

func (m *MockOrderRepo) ListByStatus(ctx context.Context, status string) ([]*Order, error) {
	orders, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var result []*Order
	for _, o := range orders {
		if o.Status == status {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Order, error) {
	orders, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var result []*Order
	for _, o := range orders {
		if o.CustomerID == customerID {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *MockOrderRepo) Save(ctx context.Context, o *Order) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, o)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[o.ID]; !ok {
		return fmt.Errorf("order not found")
	}
	m.orders[o.ID] = o
	return nil
}

func (m *MockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[id]; !ok {
		return fmt.Errorf("order not found")
	}
	delete(m.orders, id)
	return nil
}
