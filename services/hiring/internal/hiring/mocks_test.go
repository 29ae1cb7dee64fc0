package hiring

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type MockPublisher struct {
	mu          sync.Mutex
	Published   [][]byte
	Topics      []string
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

type MockHiringRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*HiringRequest

	CreateFunc func(ctx context.Context, hr *HiringRequest) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*HiringRequest, error)
	ListFunc   func(ctx context.Context) ([]*HiringRequest, error)
	SaveFunc   func(ctx context.Context, hr *HiringRequest) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockHiringRequestRepo() *MockHiringRequestRepo {
	return &MockHiringRequestRepo{
		requests: make(map[uuid.UUID]*HiringRequest),
	}
}

func (m *MockHiringRequestRepo) Create(ctx context.Context, hr *HiringRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, hr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[hr.ID] = hr
	return nil
}

func (m *MockHiringRequestRepo) Get(ctx context.Context, id uuid.UUID) (*HiringRequest, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[id], nil
}

func (m *MockHiringRequestRepo) List(ctx context.Context) ([]*HiringRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*HiringRequest, 0, len(m.requests))
	for _, hr := range m.requests {
		result = append(result, hr)
	}
	return result, nil
}

func (m *MockHiringRequestRepo) ListByCourier(ctx context.Context, courierID uuid.UUID) ([]*HiringRequest, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var result []*HiringRequest
	for _, hr := range all {
		if hr.CourierID == courierID {
			result = append(result, hr)
		}
	}
	return result, nil
}

func (m *MockHiringRequestRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*HiringRequest, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var result []*HiringRequest
	for _, hr := range all {
		if hr.RestaurantID == restaurantID {
			result = append(result, hr)
		}
	}
	return result, nil
}

func (m *MockHiringRequestRepo) Save(ctx context.Context, hr *HiringRequest) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, hr)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[hr.ID]; !ok {
		return fmt.Errorf("hiring request not found")
	}
	m.requests[hr.ID] = hr
	return nil
}

func (m *MockHiringRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[id]; !ok {
		return fmt.Errorf("hiring request not found")
	}
	delete(m.requests, id)
	return nil
}
