package hiring

import (
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/enums/hiringstatus"
)

const (
	BucketActive     = "active"
	BucketPending    = "pending"
	BucketTerminated = "terminated"
	BucketRejected   = "rejected"
)

// Buckets partitions a courier's requests for the hiring board. The four
// buckets are disjoint and exhaustive; ByRestaurant answers "did I
// already apply here" without a scan.
type Buckets struct {
	Active       []*HiringRequest            `json:"active"`
	Pending      []*HiringRequest            `json:"pending"`
	Terminated   []*HiringRequest            `json:"terminated"`
	Rejected     []*HiringRequest            `json:"rejected"`
	ByRestaurant map[uuid.UUID]*HiringRequest `json:"-"`
}

// Bucketize partitions requests by status. A request with a status
// outside the enum lands in rejected rather than disappearing from the
// board. When the same restaurant appears more than once, ByRestaurant
// keeps the live request over a closed one.
func Bucketize(requests []*HiringRequest) Buckets {
	b := Buckets{
		Active:       []*HiringRequest{},
		Pending:      []*HiringRequest{},
		Terminated:   []*HiringRequest{},
		Rejected:     []*HiringRequest{},
		ByRestaurant: make(map[uuid.UUID]*HiringRequest, len(requests)),
	}

	for _, hr := range requests {
		switch hr.Status {
		case hiringstatus.Statuses.Accepted.Name:
			b.Active = append(b.Active, hr)
		case hiringstatus.Statuses.Pending.Name:
			b.Pending = append(b.Pending, hr)
		case hiringstatus.Statuses.Terminated.Name:
			b.Terminated = append(b.Terminated, hr)
		default:
			b.Rejected = append(b.Rejected, hr)
		}

		existing, ok := b.ByRestaurant[hr.RestaurantID]
		if !ok || (!existing.IsLive() && hr.IsLive()) {
			b.ByRestaurant[hr.RestaurantID] = hr
		}
	}

	return b
}

// HasLiveRequest reports whether any request in the slice is still
// pending or accepted for the given restaurant.
func HasLiveRequest(requests []*HiringRequest, restaurantID uuid.UUID) bool {
	for _, hr := range requests {
		if hr.RestaurantID == restaurantID && hr.IsLive() {
			return true
		}
	}
	return false
}
