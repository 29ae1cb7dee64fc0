package registration

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

type MockPublisher struct {
	mu        sync.Mutex
	Published [][]byte
	Topics    []string
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Published = append(m.Published, msg)
	m.Topics = append(m.Topics, topic)
	return nil
}

type MockCredentialRepo struct {
	mu          sync.Mutex
	credentials map[uuid.UUID]*Credential

	CreateFunc func(ctx context.Context, c *Credential) error
	DeleteFunc func(ctx context.Context, id uuid.UUID) error
}

func NewMockCredentialRepo() *MockCredentialRepo {
	return &MockCredentialRepo{
		credentials: make(map[uuid.UUID]*Credential),
	}
}

func (m *MockCredentialRepo) Create(ctx context.Context, c *Credential) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentials[c.ID] = c
	return nil
}

func (m *MockCredentialRepo) GetByEmailLookup(ctx context.Context, lookup []byte) (*Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.credentials {
		if bytes.Equal(c.EmailLookup, lookup) {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCredentialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.credentials[id]; !ok {
		return fmt.Errorf("credential not found")
	}
	delete(m.credentials, id)
	return nil
}

func (m *MockCredentialRepo) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.credentials)
}

type MockProfileRepo struct {
	mu       sync.Mutex
	profiles []*UserProfile

	CreateFunc func(ctx context.Context, p *UserProfile) error
}

func NewMockProfileRepo() *MockProfileRepo {
	return &MockProfileRepo{}
}

func (m *MockProfileRepo) Create(ctx context.Context, p *UserProfile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = append(m.profiles, p)
	return nil
}

type MockBusinessRepo struct {
	mu         sync.Mutex
	businesses []*Business

	CreateFunc func(ctx context.Context, b *Business) error
}

func NewMockBusinessRepo() *MockBusinessRepo {
	return &MockBusinessRepo{}
}

func (m *MockBusinessRepo) Create(ctx context.Context, b *Business) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.businesses = append(m.businesses, b)
	return nil
}

type MockDirectory struct {
	mu       sync.Mutex
	listings []*Business

	CreateListingFunc func(ctx context.Context, b *Business) error
}

func NewMockDirectory() *MockDirectory {
	return &MockDirectory{}
}

func (m *MockDirectory) CreateListing(ctx context.Context, b *Business) error {
	if m.CreateListingFunc != nil {
		return m.CreateListingFunc(ctx, b)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings = append(m.listings, b)
	return nil
}
