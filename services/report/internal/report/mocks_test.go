package report

import (
	"context"
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

// MockReportRepo preserves insertion order so tests control the listing
// order the real repo gets from its sort.
type MockReportRepo struct {
	mu      sync.Mutex
	reports []*ProblemReport

	CreateFunc func(ctx context.Context, p *ProblemReport) error
	GetFunc    func(ctx context.Context, id uuid.UUID) (*ProblemReport, error)
	ListFunc   func(ctx context.Context) ([]*ProblemReport, error)
	SaveFunc   func(ctx context.Context, p *ProblemReport) error
}

func NewMockReportRepo() *MockReportRepo {
	return &MockReportRepo{}
}

func (m *MockReportRepo) Create(ctx context.Context, p *ProblemReport) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, p)
	return nil
}

func (m *MockReportRepo) Get(ctx context.Context, id uuid.UUID) (*ProblemReport, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.reports {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockReportRepo) List(ctx context.Context) ([]*ProblemReport, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ProblemReport, len(m.reports))
	copy(out, m.reports)
	return out, nil
}

func (m *MockReportRepo) Save(ctx context.Context, p *ProblemReport) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.reports {
		if existing.ID == p.ID {
			m.reports[i] = p
			return nil
		}
	}
	m.reports = append(m.reports, p)
	return nil
}

type MockSupportChatRepo struct {
	Chats    []*SupportChat
	ListFunc func(ctx context.Context) ([]*SupportChat, error)
}

func (m *MockSupportChatRepo) List(ctx context.Context) ([]*SupportChat, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.Chats, nil
}

type MockOrderSource struct {
	Orders   []*OrderSummary
	ListFunc func(ctx context.Context) ([]*OrderSummary, error)
}

func (m *MockOrderSource) ListOrders(ctx context.Context) ([]*OrderSummary, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return m.Orders, nil
}
