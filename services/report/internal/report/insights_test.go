package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		param     string
		wantName  string
		wantStart time.Time
		wantErr   bool
	}{
		{name: "empty", param: "", wantName: "all"},
		{name: "all", param: "all", wantName: "all"},
		{name: "sevenDays", param: "7d", wantName: "7d", wantStart: now.AddDate(0, 0, -7)},
		{name: "thirtyDays", param: "30d", wantName: "30d", wantStart: now.AddDate(0, 0, -30)},
		{name: "unknown", param: "90d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseWindow(tt.param, now)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseWindow() should fail")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWindow() error = %v", err)
			}
			if w.Name != tt.wantName {
				t.Errorf("name = %q, want %q", w.Name, tt.wantName)
			}
			if !w.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", w.Start, tt.wantStart)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	week, _ := ParseWindow("7d", now)
	all, _ := ParseWindow("all", now)

	if !week.Contains(now.AddDate(0, 0, -3)) {
		t.Error("three days ago should be inside the 7d window")
	}
	if week.Contains(now.AddDate(0, 0, -8)) {
		t.Error("eight days ago should be outside the 7d window")
	}
	if week.Contains(time.Time{}) {
		t.Error("a zero timestamp is outside any bounded window")
	}
	if !all.Contains(time.Time{}) {
		t.Error("a zero timestamp is inside the unbounded window")
	}
}

func TestComputeInsights(t *testing.T) {
	now := time.Now()
	restA := uuid.New()
	restB := uuid.New()
	courier := uuid.New()
	custA := uuid.New()
	custB := uuid.New()

	lowStars := &RatingSummary{Stars: 2}
	goodStars := &RatingSummary{Stars: 5}

	orders := []*OrderSummary{
		{
			ID: uuid.New(), CustomerID: custA, RestaurantID: restA, RestaurantName: "Taverna",
			CourierID: &courier, CourierName: "Dana",
			Ratings:   RatingsSummary{CustomerToRestaurant: lowStars, CustomerToCourier: lowStars},
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID: uuid.New(), CustomerID: custA, RestaurantID: restA, RestaurantName: "Taverna",
			Ratings:   RatingsSummary{CustomerToRestaurant: goodStars},
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID: uuid.New(), CustomerID: custB, RestaurantID: restB, RestaurantName: "Bistro",
			CourierID: &courier, CourierName: "Dana",
			CreatedAt: now.Add(-3 * time.Hour),
		},
	}

	reports := []*ProblemReport{
		{ID: uuid.New(), ReporterID: custB, CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), ReporterID: custB, CreatedAt: now.Add(-time.Hour)},
	}
	chats := []*SupportChat{
		{ID: uuid.New(), CustomerID: custB, CreatedAt: now.Add(-time.Hour)},
	}

	window, _ := ParseWindow("all", now)
	got := ComputeInsights(window, orders, reports, chats)

	if len(got.Restaurants) != 2 {
		t.Fatalf("restaurants = %d, want 2", len(got.Restaurants))
	}
	// Taverna has one low rating, Bistro none, so Taverna sorts first.
	if got.Restaurants[0].RestaurantName != "Taverna" {
		t.Errorf("first restaurant = %q, want Taverna", got.Restaurants[0].RestaurantName)
	}
	if got.Restaurants[0].OrderCount != 2 || got.Restaurants[0].LowRatingCount != 1 {
		t.Errorf("Taverna counts = %d/%d, want 2/1", got.Restaurants[0].OrderCount, got.Restaurants[0].LowRatingCount)
	}

	if len(got.Couriers) != 1 {
		t.Fatalf("couriers = %d, want 1", len(got.Couriers))
	}
	if got.Couriers[0].DeliveryCount != 2 || got.Couriers[0].LowRatingCount != 1 {
		t.Errorf("courier counts = %d/%d, want 2/1", got.Couriers[0].DeliveryCount, got.Couriers[0].LowRatingCount)
	}

	if len(got.Customers) != 2 {
		t.Fatalf("customers = %d, want 2", len(got.Customers))
	}
	// custB carries two reports and one chat, custA none.
	if got.Customers[0].CustomerID != custB {
		t.Error("customer with complaints should sort first")
	}
	if got.Customers[0].ComplaintCount != 3 {
		t.Errorf("complaint count = %d, want 3", got.Customers[0].ComplaintCount)
	}
	if got.Customers[0].OrderCount != 1 {
		t.Errorf("custB order count = %d, want 1", got.Customers[0].OrderCount)
	}
}

func TestComputeInsightsWindowing(t *testing.T) {
	now := time.Now()
	rest := uuid.New()
	cust := uuid.New()

	orders := []*OrderSummary{
		{ID: uuid.New(), CustomerID: cust, RestaurantID: rest, RestaurantName: "Taverna", CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), CustomerID: cust, RestaurantID: rest, RestaurantName: "Taverna", CreatedAt: now.AddDate(0, 0, -10)},
		// Zero timestamp counts only in the unbounded window.
		{ID: uuid.New(), CustomerID: cust, RestaurantID: rest, RestaurantName: "Taverna"},
	}

	week, _ := ParseWindow("7d", now)
	got := ComputeInsights(week, orders, nil, nil)
	if len(got.Restaurants) != 1 || got.Restaurants[0].OrderCount != 1 {
		t.Errorf("7d window should count 1 order, got %+v", got.Restaurants)
	}

	all, _ := ParseWindow("all", now)
	got = ComputeInsights(all, orders, nil, nil)
	if got.Restaurants[0].OrderCount != 3 {
		t.Errorf("all window should count 3 orders, got %d", got.Restaurants[0].OrderCount)
	}
}

func TestComputeInsightsSkipsMissingPartyIDs(t *testing.T) {
	now := time.Now()
	cust := uuid.New()

	orders := []*OrderSummary{
		// No restaurant id and no courier: counts only for the customer.
		{ID: uuid.New(), CustomerID: cust, CreatedAt: now.Add(-time.Hour)},
	}
	reports := []*ProblemReport{
		// No reporter id: excluded from the complaint count.
		{ID: uuid.New(), CreatedAt: now.Add(-time.Hour)},
	}

	all, _ := ParseWindow("all", now)
	got := ComputeInsights(all, orders, reports, nil)

	if len(got.Restaurants) != 0 {
		t.Errorf("restaurants = %d, want 0", len(got.Restaurants))
	}
	if len(got.Couriers) != 0 {
		t.Errorf("couriers = %d, want 0", len(got.Couriers))
	}
	if len(got.Customers) != 1 || got.Customers[0].OrderCount != 1 || got.Customers[0].ComplaintCount != 0 {
		t.Errorf("customers = %+v, want one with 1 order and 0 complaints", got.Customers)
	}
}

func TestIsLowRating(t *testing.T) {
	if isLowRating(nil) {
		t.Error("missing rating is not low")
	}
	if isLowRating(&RatingSummary{Stars: 0}) {
		t.Error("zero stars means unrated, not low")
	}
	if !isLowRating(&RatingSummary{Stars: 1}) || !isLowRating(&RatingSummary{Stars: 2}) {
		t.Error("one and two stars are low")
	}
	if isLowRating(&RatingSummary{Stars: 3}) {
		t.Error("three stars is not low")
	}
}
