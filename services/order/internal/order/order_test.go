package order

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestNewOrder(t *testing.T) {
	o := NewOrder()

	if o == nil {
		t.Fatal("NewOrder() returned nil")
	}

	if o.ID == uuid.Nil {
		t.Error("NewOrder() should generate a non-nil UUID")
	}

	if o.Status != "pending" {
		t.Errorf("NewOrder() Status = %q, want %q", o.Status, "pending")
	}
}

func TestOrderSetStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantOK     bool
		wantStatus string
	}{
		{
			name:       "knownStatus",
			status:     "out_for_delivery",
			wantOK:     true,
			wantStatus: "out_for_delivery",
		},
		{
			name:       "unknownStatusRejected",
			status:     "vaporized",
			wantOK:     false,
			wantStatus: "pending",
		},
		{
			name:       "emptyStatusRejected",
			status:     "",
			wantOK:     false,
			wantStatus: "pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrder()
			ok := o.SetStatus(tt.status)

			if ok != tt.wantOK {
				t.Errorf("SetStatus(%q) = %v, want %v", tt.status, ok, tt.wantOK)
			}
			if o.Status != tt.wantStatus {
				t.Errorf("SetStatus(%q) left Status = %q, want %q", tt.status, o.Status, tt.wantStatus)
			}
		})
	}
}

func TestOrderEnsureID(t *testing.T) {
	o := &Order{}
	o.EnsureID()
	if o.ID == uuid.Nil {
		t.Error("EnsureID() should generate non-nil UUID")
	}

	existing := o.ID
	o.EnsureID()
	if o.ID != existing {
		t.Errorf("EnsureID() changed existing ID from %v to %v", existing, o.ID)
	}
}

func TestOrderItemsTotal(t *testing.T) {
	o := &Order{
		Items: []OrderItem{
			{Name: "Pizza", Price: 9.5, Qty: 2},
			{Name: "Soda", Price: 1.25, Qty: 4},
		},
	}

	want := 24.0
	if got := o.ItemsTotal(); math.Abs(got-want) > 1e-9 {
		t.Errorf("ItemsTotal() = %v, want %v", got, want)
	}
}

func TestOrderAssignCourier(t *testing.T) {
	o := NewOrder()
	courierID := uuid.MustParse("550e8400-e29b-41d4-a716-446655440010")

	o.AssignCourier(courierID, "Sam Byte")

	if o.CourierID == nil || *o.CourierID != courierID {
		t.Errorf("AssignCourier() CourierID = %v, want %v", o.CourierID, courierID)
	}
	if o.CourierName != "Sam Byte" {
		t.Errorf("AssignCourier() CourierName = %q, want %q", o.CourierName, "Sam Byte")
	}
}

func TestOrderRatings(t *testing.T) {
	o := NewOrder()

	if o.Ratings.CustomerToRestaurant != nil {
		t.Error("new order should have no restaurant rating")
	}

	o.RateRestaurant(2, "cold food")
	if o.Ratings.CustomerToRestaurant == nil || o.Ratings.CustomerToRestaurant.Stars != 2 {
		t.Errorf("RateRestaurant() = %+v, want stars 2", o.Ratings.CustomerToRestaurant)
	}

	o.RateCourier(5, "")
	if o.Ratings.CustomerToCourier == nil || o.Ratings.CustomerToCourier.Stars != 5 {
		t.Errorf("RateCourier() = %+v, want stars 5", o.Ratings.CustomerToCourier)
	}
}

func TestOrderResourceType(t *testing.T) {
	o := &Order{}
	if got := o.ResourceType(); got != "order" {
		t.Errorf("Order.ResourceType() = %q, want %q", got, "order")
	}
}
