package order

import (
	"context"

	"github.com/google/uuid"
)

type OrderRepo interface {
	Create(ctx context.Context, order *Order) error
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]*Order, error)
	// ListSorted returns all orders newest first; the store may refuse
	// when the backing index is missing.
	ListSorted(ctx context.Context) ([]*Order, error)
	ListByStatus(ctx context.Context, status string) ([]*Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*Order, error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}
