package order

import (
	"github.com/mealmesh/mealmesh/pkg/enums/orderstatus"
)

// BucketOther collects orders whose status is not one of the enumerated
// values. They still render, just without a dedicated column.
const BucketOther = "other"

// Buckets keys orders by status. Every order lands in exactly one bucket.
type Buckets map[string][]*Order

// BucketByStatus partitions orders into per-status buckets. Known
// statuses bucket under their own code; anything else goes to
// BucketOther.
func BucketByStatus(orders []*Order) Buckets {
	buckets := make(Buckets, len(orderstatus.All)+1)
	for _, s := range orderstatus.All {
		buckets[s.Name] = []*Order{}
	}
	for _, o := range orders {
		key := o.Status
		if orderstatus.ByName(key) == nil {
			key = BucketOther
		}
		buckets[key] = append(buckets[key], o)
	}
	return buckets
}
