package restaurant

import (
	"context"

	"github.com/google/uuid"
)

type RestaurantRepo interface {
	Create(ctx context.Context, r *Restaurant) error
	Get(ctx context.Context, id uuid.UUID) (*Restaurant, error)
	List(ctx context.Context) ([]*Restaurant, error)
	ListByReferrer(ctx context.Context, adminID uuid.UUID) ([]*Restaurant, error)
	Save(ctx context.Context, r *Restaurant) error
}
