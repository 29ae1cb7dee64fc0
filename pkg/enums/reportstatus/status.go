package reportstatus

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
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

type Enum struct {
	Pending  Status
	Reviewed Status
	Resolved Status
}

var Statuses = Enum{
	Pending:  Status{Name: "pending"},
	Reviewed: Status{Name: "reviewed"},
	Resolved: Status{Name: "resolved"},
}

var All = []Status{
	Statuses.Pending,
	Statuses.Reviewed,
	Statuses.Resolved,
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

// CanTransition reports whether a report may move from one status to
// another. The flow is one-directional: pending -> reviewed -> resolved,
// where reviewed may be skipped. There is no way back.
func CanTransition(from, to string) bool {
	switch from {
	case Statuses.Pending.Name:
		return to == Statuses.Reviewed.Name || to == Statuses.Resolved.Name
	case Statuses.Reviewed.Name:
		return to == Statuses.Resolved.Name
	default:
		return false
	}
}
