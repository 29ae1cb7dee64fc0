package restaurant

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type MockRestaurantRepo struct {
	mu          sync.Mutex
	restaurants map[uuid.UUID]*Restaurant

	CreateFunc func(ctx context.Context, r *Restaurant) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*Restaurant, error)
	ListFunc   func(ctx context.Context) ([]*Restaurant, error)
	SaveFunc   func(ctx context.Context, r *Restaurant) error
}

func NewMockRestaurantRepo() *MockRestaurantRepo {
	return &MockRestaurantRepo{
		restaurants: make(map[uuid.UUID]*Restaurant),
	}
}

func (m *MockRestaurantRepo) Create(ctx context.Context, r *Restaurant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[r.ID] = r
	return nil
}

func (m *MockRestaurantRepo) Get(ctx context.Context, id uuid.UUID) (*Restaurant, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.restaurants[id], nil
}

func (m *MockRestaurantRepo) List(ctx context.Context) ([]*Restaurant, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Restaurant, 0, len(m.restaurants))
	for _, r := range m.restaurants {
		out = append(out, r)
	}
	return out, nil
}

func (m *MockRestaurantRepo) ListByReferrer(ctx context.Context, adminID uuid.UUID) ([]*Restaurant, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Restaurant, 0, len(all))
	for _, r := range all {
		if r.ReferredBy != nil && *r.ReferredBy == adminID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRestaurantRepo) Save(ctx context.Context, r *Restaurant) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restaurants[r.ID] = r
	return nil
}
