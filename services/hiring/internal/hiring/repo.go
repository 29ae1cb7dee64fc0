package hiring

import (
	"context"

	"github.com/google/uuid"
)

type HiringRequestRepo interface {
	Create(ctx context.Context, hr *HiringRequest) error
	Get(ctx context.Context, id uuid.UUID) (*HiringRequest, error)
	List(ctx context.Context) ([]*HiringRequest, error)
	ListByCourier(ctx context.Context, courierID uuid.UUID) ([]*HiringRequest, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*HiringRequest, error)
	Save(ctx context.Context, hr *HiringRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}
