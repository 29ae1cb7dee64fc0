package event

import "time"

const (
	ReportsTopic             = "reports.events"
	EventReportSubmitted     = "report.submitted"
	EventReportStatusChanged = "report.status_changed"
)

// ReportEventMetadata carries only the event type for dispatch.
type ReportEventMetadata struct {
	EventType string `json:"event_type"`
}

// ReportEvent is published on intake and on triage transitions so the
// admin triage board can refresh without polling.
type ReportEvent struct {
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	ReportID     string    `json:"report_id"`
	ReporterID   string    `json:"reporter_id,omitempty"`
	ReporterName string    `json:"reporter_name,omitempty"`
	Category     string    `json:"category,omitempty"`
	Status       string    `json:"status"`
}
