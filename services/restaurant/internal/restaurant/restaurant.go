package restaurant

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

// Restaurant is the directory entry the other services read. ReferredBy
// links the restaurant to the admin who brought it onto the platform and
// drives admin order visibility.
type Restaurant struct {
	ID            uuid.UUID  `json:"id" bson:"_id"`
	Name          string     `json:"name" bson:"name"`
	City          string     `json:"city,omitempty" bson:"city,omitempty"`
	LogoURL       string     `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	ReferredBy    *uuid.UUID `json:"referred_by,omitempty" bson:"referred_by,omitempty"`
	OpenForOrders bool       `json:"open_for_orders" bson:"open_for_orders"`
	Tier          string     `json:"tier" bson:"tier"`
	LicenseStatus string     `json:"license_status" bson:"license_status"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

func (r *Restaurant) GetID() uuid.UUID {
	return r.ID
}

func (r *Restaurant) ResourceType() string {
	return "restaurant"
}

func (r *Restaurant) SetID(id uuid.UUID) {
	r.ID = id
}

func NewRestaurant() *Restaurant {
	return &Restaurant{
		ID:            apt.GenerateNewID(),
		OpenForOrders: true,
		Tier:          "free",
		LicenseStatus: "pending",
	}
}

func (r *Restaurant) EnsureID() {
	if r.ID == uuid.Nil {
		r.ID = apt.GenerateNewID()
	}
}

func (r *Restaurant) BeforeCreate() {
	r.EnsureID()
	r.CreatedAt = time.Now()
	r.UpdatedAt = time.Now()
}
