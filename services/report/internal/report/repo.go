package report

import (
	"context"

	"github.com/google/uuid"
)

type ProblemReportRepo interface {
	Create(ctx context.Context, report *ProblemReport) error
	Get(ctx context.Context, id uuid.UUID) (*ProblemReport, error)
	List(ctx context.Context) ([]*ProblemReport, error)
	Save(ctx context.Context, report *ProblemReport) error
}

// SupportChatRepo reads the support conversation store owned by another
// service. No writes happen from here.
type SupportChatRepo interface {
	List(ctx context.Context) ([]*SupportChat, error)
}

// OrderSource yields the order set the insight aggregations run over.
type OrderSource interface {
	ListOrders(ctx context.Context) ([]*OrderSummary, error)
}
