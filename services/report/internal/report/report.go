package report

import (
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/enums/reportstatus"
)

// ProblemReport is a complaint or suggestion filed by any signed-in user.
// Reporter identity is denormalized at intake so the triage board renders
// without user lookups, even after the account changes.
type ProblemReport struct {
	ID            uuid.UUID  `json:"id" bson:"_id"`
	ReporterID    uuid.UUID  `json:"reporter_id" bson:"reporter_id"`
	ReporterName  string     `json:"reporter_name" bson:"reporter_name"`
	ReporterEmail string     `json:"reporter_email" bson:"reporter_email"`
	ReporterRole  string     `json:"reporter_role" bson:"reporter_role"`
	Category      string     `json:"category" bson:"category"`
	Description   string     `json:"description" bson:"description"`
	Status        string     `json:"status" bson:"status"`
	ReviewedBy    *uuid.UUID `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" bson:"updated_at"`
}

func (p *ProblemReport) GetID() uuid.UUID {
	return p.ID
}

func (p *ProblemReport) ResourceType() string {
	return "report"
}

func (p *ProblemReport) SetID(id uuid.UUID) {
	p.ID = id
}

func NewProblemReport() *ProblemReport {
	return &ProblemReport{
		ID:     apt.GenerateNewID(),
		Status: reportstatus.Statuses.Pending.Name,
	}
}

func (p *ProblemReport) EnsureID() {
	if p.ID == uuid.Nil {
		p.ID = apt.GenerateNewID()
	}
}

func (p *ProblemReport) BeforeCreate() {
	p.EnsureID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
}

// MoveTo advances the report one-directionally and stamps the reviewing
// admin. Returns false without touching the report when the move is not
// allowed.
func (p *ProblemReport) MoveTo(status string, by uuid.UUID) bool {
	if !reportstatus.CanTransition(p.Status, status) {
		return false
	}
	now := time.Now()
	p.Status = status
	p.ReviewedBy = &by
	p.ReviewedAt = &now
	p.UpdatedAt = now
	return true
}
