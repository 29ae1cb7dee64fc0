package hiring

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/enums/hiringstatus"
)

// HiringRequest is a courier's application to ride for a restaurant. The
// same (courier, restaurant) pair may recur over time; only one live
// request (pending or accepted) is allowed at once.
type HiringRequest struct {
	ID             uuid.UUID `json:"id" bson:"_id"`
	CourierID      uuid.UUID `json:"courier_id" bson:"courier_id"`
	CourierName    string    `json:"courier_name" bson:"courier_name"`
	RestaurantID   uuid.UUID `json:"restaurant_id" bson:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name" bson:"restaurant_name"`
	Status         string    `json:"status" bson:"status"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
	UpdatedBy      string    `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
}

func (hr *HiringRequest) GetID() uuid.UUID {
	return hr.ID
}

func (hr *HiringRequest) ResourceType() string {
	return "hiring-request"
}

func (hr *HiringRequest) SetID(id uuid.UUID) {
	hr.ID = id
}

func NewHiringRequest() *HiringRequest {
	return &HiringRequest{
		ID:     apt.GenerateNewID(),
		Status: hiringstatus.Statuses.Pending.Name,
	}
}

func (hr *HiringRequest) EnsureID() {
	if hr.ID == uuid.Nil {
		hr.ID = apt.GenerateNewID()
	}
}

func (hr *HiringRequest) BeforeCreate() {
	hr.EnsureID()
	hr.CreatedAt = time.Now()
	hr.UpdatedAt = time.Now()
}

func (hr *HiringRequest) BeforeUpdate() {
	hr.UpdatedAt = time.Now()
}

// IsLive reports whether the request blocks a new application for the
// same (courier, restaurant) pair.
func (hr *HiringRequest) IsLive() bool {
	return hr.Status == hiringstatus.Statuses.Pending.Name || hr.Status == hiringstatus.Statuses.Accepted.Name
}

// IsTerminal reports whether the request may be deleted.
func (hr *HiringRequest) IsTerminal() bool {
	return hr.Status == hiringstatus.Statuses.Rejected.Name || hr.Status == hiringstatus.Statuses.Terminated.Name
}

// Accept moves a pending request to accepted. Returns false when the
// request is not pending; the receiver is untouched in that case.
func (hr *HiringRequest) Accept(by string) bool {
	return hr.transition(hiringstatus.Statuses.Pending.Name, hiringstatus.Statuses.Accepted.Name, by)
}

// Reject moves a pending request to rejected.
func (hr *HiringRequest) Reject(by string) bool {
	return hr.transition(hiringstatus.Statuses.Pending.Name, hiringstatus.Statuses.Rejected.Name, by)
}

// Terminate ends an accepted engagement.
func (hr *HiringRequest) Terminate(by string) bool {
	return hr.transition(hiringstatus.Statuses.Accepted.Name, hiringstatus.Statuses.Terminated.Name, by)
}

// Reactivate restores a terminated engagement to accepted.
func (hr *HiringRequest) Reactivate(by string) bool {
	return hr.transition(hiringstatus.Statuses.Terminated.Name, hiringstatus.Statuses.Accepted.Name, by)
}

func (hr *HiringRequest) transition(from, to, by string) bool {
	if hr.Status != from {
		return false
	}
	hr.Status = to
	hr.UpdatedBy = by
	hr.UpdatedAt = time.Now()
	return true
}
