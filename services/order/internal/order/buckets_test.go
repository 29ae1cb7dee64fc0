package order

import (
	"testing"

	"github.com/appetiteclub/apt"

	"github.com/mealmesh/mealmesh/pkg/enums/orderstatus"
)

func TestBucketByStatus(t *testing.T) {
	orders := []*Order{
		{ID: apt.GenerateNewID(), Status: "pending"},
		{ID: apt.GenerateNewID(), Status: "pending"},
		{ID: apt.GenerateNewID(), Status: "delivered"},
		{ID: apt.GenerateNewID(), Status: "out_for_delivery"},
		{ID: apt.GenerateNewID(), Status: "cancelled"},
		{ID: apt.GenerateNewID(), Status: "totally_bogus"},
	}

	buckets := BucketByStatus(orders)

	if got := len(buckets["pending"]); got != 2 {
		t.Errorf("BucketByStatus() pending count = %d, want 2", got)
	}
	if got := len(buckets["delivered"]); got != 1 {
		t.Errorf("BucketByStatus() delivered count = %d, want 1", got)
	}
	if got := len(buckets["out_for_delivery"]); got != 1 {
		t.Errorf("BucketByStatus() out_for_delivery count = %d, want 1", got)
	}
	if got := len(buckets[BucketOther]); got != 1 {
		t.Errorf("BucketByStatus() other count = %d, want 1", got)
	}
}

func TestBucketByStatusIsPartition(t *testing.T) {
	orders := []*Order{
		{ID: apt.GenerateNewID(), Status: "pending"},
		{ID: apt.GenerateNewID(), Status: "accepted"},
		{ID: apt.GenerateNewID(), Status: "preparing"},
		{ID: apt.GenerateNewID(), Status: "ready"},
		{ID: apt.GenerateNewID(), Status: "delivered"},
		{ID: apt.GenerateNewID(), Status: ""},
		{ID: apt.GenerateNewID(), Status: "mystery"},
	}

	buckets := BucketByStatus(orders)

	total := 0
	seen := make(map[string]bool)
	for key, bucket := range buckets {
		total += len(bucket)
		for _, o := range bucket {
			id := o.ID.String()
			if seen[id] {
				t.Errorf("order %s appears in more than one bucket (last: %s)", id, key)
			}
			seen[id] = true
		}
	}

	if total != len(orders) {
		t.Errorf("BucketByStatus() distributed %d orders, want %d", total, len(orders))
	}
}

func TestBucketByStatusEmptyBucketsPresent(t *testing.T) {
	buckets := BucketByStatus(nil)

	for _, s := range orderstatus.All {
		if _, ok := buckets[s.Name]; !ok {
			t.Errorf("BucketByStatus() missing bucket for status %q", s.Name)
		}
	}
}
