package order

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/enums/orderstatus"
)

// OrderItem is a line item as placed, denormalized from the menu at
// order time.
type OrderItem struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
	Qty   int     `json:"qty" bson:"qty"`
}

// Rating is a star rating one party gives another for a single order.
type Rating struct {
	Stars   int    `json:"stars" bson:"stars"`
	Comment string `json:"comment,omitempty" bson:"comment,omitempty"`
}

// Ratings holds the per-party rating sub-objects. Either may be absent.
type Ratings struct {
	CustomerToRestaurant *Rating `json:"customer_to_restaurant,omitempty" bson:"customer_to_restaurant,omitempty"`
	CustomerToCourier    *Rating `json:"customer_to_courier,omitempty" bson:"customer_to_courier,omitempty"`
}

type Order struct {
	ID             uuid.UUID   `json:"id" bson:"_id"`
	CustomerID     uuid.UUID   `json:"customer_id" bson:"customer_id"`
	RestaurantID   uuid.UUID   `json:"restaurant_id" bson:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name" bson:"restaurant_name"`
	Address        string      `json:"address" bson:"address"`
	Items          []OrderItem `json:"items" bson:"items"`
	Total          float64     `json:"total" bson:"total"`
	Status         string      `json:"status" bson:"status"`
	CourierID      *uuid.UUID  `json:"courier_id,omitempty" bson:"courier_id,omitempty"`
	CourierName    string      `json:"courier_name,omitempty" bson:"courier_name,omitempty"`
	Ratings        Ratings     `json:"ratings" bson:"ratings"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
	CreatedBy      string      `json:"created_by" bson:"created_by"`
	UpdatedAt      time.Time   `json:"updated_at" bson:"updated_at"`
	UpdatedBy      string      `json:"updated_by" bson:"updated_by"`
}

func (o *Order) GetID() uuid.UUID {
	return o.ID
}

func (o *Order) ResourceType() string {
	return "order"
}

func (o *Order) SetID(id uuid.UUID) {
	o.ID = id
}

func NewOrder() *Order {
	return &Order{
		ID:     apt.GenerateNewID(),
		Status: orderstatus.Statuses.Pending.Name,
	}
}

func (o *Order) EnsureID() {
	if o.ID == uuid.Nil {
		o.ID = apt.GenerateNewID()
	}
}

func (o *Order) BeforeCreate() {
	o.EnsureID()
	o.CreatedAt = time.Now()
	o.UpdatedAt = time.Now()
}

func (o *Order) BeforeUpdate() {
	o.UpdatedAt = time.Now()
}

// SetStatus applies a status coming from a kitchen or courier
// collaborator. Unknown values are rejected so a bad event cannot wedge
// an order into an unrenderable state.
func (o *Order) SetStatus(status string) bool {
	if orderstatus.ByName(status) == nil {
		return false
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return true
}

func (o *Order) AssignCourier(courierID uuid.UUID, name string) {
	o.CourierID = &courierID
	o.CourierName = name
	o.UpdatedAt = time.Now()
}

func (o *Order) RateRestaurant(stars int, comment string) {
	o.Ratings.CustomerToRestaurant = &Rating{Stars: stars, Comment: comment}
	o.UpdatedAt = time.Now()
}

func (o *Order) RateCourier(stars int, comment string) {
	o.Ratings.CustomerToCourier = &Rating{Stars: stars, Comment: comment}
	o.UpdatedAt = time.Now()
}

// ItemsTotal derives the order total from its line items.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Qty)
	}
	return total
}
