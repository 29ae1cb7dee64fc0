package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const LowRatingMaxStars = 2

// Window bounds an insight run. A zero Start means unbounded ("all").
type Window struct {
	Name  string
	Start time.Time
}

// ParseWindow resolves the window query parameter. An empty value means
// all time; anything else must be one of the known presets.
func ParseWindow(name string, now time.Time) (Window, error) {
	switch name {
	case "", "all":
		return Window{Name: "all"}, nil
	case "7d":
		return Window{Name: "7d", Start: now.AddDate(0, 0, -7)}, nil
	case "30d":
		return Window{Name: "30d", Start: now.AddDate(0, 0, -30)}, nil
	default:
		return Window{}, fmt.Errorf("unknown window %q", name)
	}
}

// Contains reports whether a timestamp falls inside the window. A zero
// timestamp is inside only the unbounded window; a record with no known
// creation time cannot be claimed by "last 7 days".
func (w Window) Contains(t time.Time) bool {
	if w.Start.IsZero() {
		return true
	}
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start)
}

type RestaurantInsight struct {
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	OrderCount     int       `json:"order_count"`
	LowRatingCount int       `json:"low_rating_count"`
}

type CourierInsight struct {
	CourierID      uuid.UUID `json:"courier_id"`
	CourierName    string    `json:"courier_name"`
	DeliveryCount  int       `json:"delivery_count"`
	LowRatingCount int       `json:"low_rating_count"`
}

type CustomerInsight struct {
	CustomerID     uuid.UUID `json:"customer_id"`
	OrderCount     int       `json:"order_count"`
	ComplaintCount int       `json:"complaint_count"`
}

type Insights struct {
	Window      string              `json:"window"`
	Restaurants []RestaurantInsight `json:"restaurants"`
	Couriers    []CourierInsight    `json:"couriers"`
	Customers   []CustomerInsight   `json:"customers"`
}

// ComputeInsights recomputes all three groupings from scratch. An order
// with a missing party id is left out of that grouping only; it still
// counts wherever its other ids are present.
func ComputeInsights(window Window, orders []*OrderSummary, reports []*ProblemReport, chats []*SupportChat) *Insights {
	restaurants := map[uuid.UUID]*RestaurantInsight{}
	couriers := map[uuid.UUID]*CourierInsight{}
	customers := map[uuid.UUID]*CustomerInsight{}

	for _, o := range orders {
		if !window.Contains(o.CreatedAt) {
			continue
		}

		if o.RestaurantID != uuid.Nil {
			ri := restaurants[o.RestaurantID]
			if ri == nil {
				ri = &RestaurantInsight{RestaurantID: o.RestaurantID, RestaurantName: o.RestaurantName}
				restaurants[o.RestaurantID] = ri
			}
			ri.OrderCount++
			if isLowRating(o.Ratings.CustomerToRestaurant) {
				ri.LowRatingCount++
			}
		}

		if o.CourierID != nil && *o.CourierID != uuid.Nil {
			ci := couriers[*o.CourierID]
			if ci == nil {
				ci = &CourierInsight{CourierID: *o.CourierID, CourierName: o.CourierName}
				couriers[*o.CourierID] = ci
			}
			ci.DeliveryCount++
			if isLowRating(o.Ratings.CustomerToCourier) {
				ci.LowRatingCount++
			}
		}

		if o.CustomerID != uuid.Nil {
			cu := ensureCustomer(customers, o.CustomerID)
			cu.OrderCount++
		}
	}

	for _, r := range reports {
		if !window.Contains(r.CreatedAt) || r.ReporterID == uuid.Nil {
			continue
		}
		ensureCustomer(customers, r.ReporterID).ComplaintCount++
	}
	for _, c := range chats {
		if !window.Contains(c.CreatedAt) || c.CustomerID == uuid.Nil {
			continue
		}
		ensureCustomer(customers, c.CustomerID).ComplaintCount++
	}

	out := &Insights{
		Window:      window.Name,
		Restaurants: make([]RestaurantInsight, 0, len(restaurants)),
		Couriers:    make([]CourierInsight, 0, len(couriers)),
		Customers:   make([]CustomerInsight, 0, len(customers)),
	}
	for _, ri := range restaurants {
		out.Restaurants = append(out.Restaurants, *ri)
	}
	for _, ci := range couriers {
		out.Couriers = append(out.Couriers, *ci)
	}
	for _, cu := range customers {
		out.Customers = append(out.Customers, *cu)
	}

	sort.Slice(out.Restaurants, func(i, j int) bool {
		a, b := out.Restaurants[i], out.Restaurants[j]
		if a.LowRatingCount != b.LowRatingCount {
			return a.LowRatingCount > b.LowRatingCount
		}
		return a.RestaurantName < b.RestaurantName
	})
	sort.Slice(out.Couriers, func(i, j int) bool {
		a, b := out.Couriers[i], out.Couriers[j]
		if a.LowRatingCount != b.LowRatingCount {
			return a.LowRatingCount > b.LowRatingCount
		}
		return a.CourierName < b.CourierName
	})
	sort.Slice(out.Customers, func(i, j int) bool {
		a, b := out.Customers[i], out.Customers[j]
		if a.ComplaintCount != b.ComplaintCount {
			return a.ComplaintCount > b.ComplaintCount
		}
		return a.CustomerID.String() < b.CustomerID.String()
	})

	return out
}

func ensureCustomer(m map[uuid.UUID]*CustomerInsight, id uuid.UUID) *CustomerInsight {
	cu := m[id]
	if cu == nil {
		cu = &CustomerInsight{CustomerID: id}
		m[id] = cu
	}
	return cu
}

func isLowRating(r *RatingSummary) bool {
	return r != nil && r.Stars > 0 && r.Stars <= LowRatingMaxStars
}
