package order

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/session"
)

// VisibleTo filters orders down to what the caller may see. The developer
// role sees everything; any other caller sees only orders for restaurants
// in its permitted set. An empty permitted set means zero orders, never
// "no restriction".
func VisibleTo(orders []*Order, sess session.Session, permitted map[uuid.UUID]bool) []*Order {
	if sess.IsPrivileged() {
		return orders
	}
	if len(permitted) == 0 {
		return []*Order{}
	}
	visible := make([]*Order, 0, len(orders))
	for _, o := range orders {
		if permitted[o.RestaurantID] {
			visible = append(visible, o)
		}
	}
	return visible
}

// SortByNewest orders a slice by creation time, newest first. Sorting is
// stable so same-timestamp orders keep their store order.
func SortByNewest(orders []*Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
