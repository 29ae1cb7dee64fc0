package orderstatus

import (
	"strings"
)

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	parts := strings.Split(s.Name, "_")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

type Enum struct {
	Pending        Status
	Accepted       Status
	Preparing      Status
	Ready          Status
	OutForDelivery Status
	Delivered      Status
	Cancelled      Status
}

var Statuses = Enum{
	Pending:        Status{Name: "pending"},
	Accepted:       Status{Name: "accepted"},
	Preparing:      Status{Name: "preparing"},
	Ready:          Status{Name: "ready"},
	OutForDelivery: Status{Name: "out_for_delivery"},
	Delivered:      Status{Name: "delivered"},
	Cancelled:      Status{Name: "cancelled"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.Accepted,
	Statuses.Preparing,
	Statuses.Ready,
	Statuses.OutForDelivery,
	Statuses.Delivered,
	Statuses.Cancelled,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
