package report

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mealmesh/mealmesh/pkg/enums/reportstatus"
)

func TestProblemReportMoveTo(t *testing.T) {
	admin := uuid.New()

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pendingToReviewed", from: "pending", to: "reviewed", want: true},
		{name: "pendingToResolved", from: "pending", to: "resolved", want: true},
		{name: "reviewedToResolved", from: "reviewed", to: "resolved", want: true},
		{name: "reviewedToPending", from: "reviewed", to: "pending", want: false},
		{name: "resolvedToReviewed", from: "resolved", to: "reviewed", want: false},
		{name: "resolvedToPending", from: "resolved", to: "pending", want: false},
		{name: "pendingToPending", from: "pending", to: "pending", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProblemReport()
			p.Status = tt.from

			got := p.MoveTo(tt.to, admin)
			if got != tt.want {
				t.Fatalf("MoveTo(%q) from %q = %v, want %v", tt.to, tt.from, got, tt.want)
			}

			if tt.want {
				if p.Status != tt.to {
					t.Errorf("status = %q, want %q", p.Status, tt.to)
				}
				if p.ReviewedBy == nil || *p.ReviewedBy != admin {
					t.Error("transition should record the reviewing admin")
				}
				if p.ReviewedAt == nil {
					t.Error("transition should record the review time")
				}
			} else {
				if p.Status != tt.from {
					t.Errorf("refused transition should not change status, got %q", p.Status)
				}
				if p.ReviewedBy != nil {
					t.Error("refused transition should not record a reviewer")
				}
			}
		})
	}
}

func TestNewProblemReport(t *testing.T) {
	p := NewProblemReport()
	if p.ID == uuid.Nil {
		t.Error("new report should have an id")
	}
	if p.Status != reportstatus.Statuses.Pending.Name {
		t.Errorf("status = %q, want pending", p.Status)
	}
}

func TestValidateIntake(t *testing.T) {
	tests := []struct {
		name        string
		category    string
		description string
		wantField   string
	}{
		{name: "valid", category: "orders", description: "My order never arrived at all", wantField: ""},
		{name: "missingCategory", category: "", description: "My order never arrived at all", wantField: "category"},
		{name: "unknownCategory", category: "weather", description: "My order never arrived at all", wantField: "category"},
		{name: "emptyDescription", category: "delivery", description: "", wantField: "description"},
		{name: "whitespaceDescription", category: "delivery", description: "   ", wantField: "description"},
		{name: "shortDescription", category: "delivery", description: "too short", wantField: "description"},
		{name: "categoryCheckedFirst", category: "", description: "", wantField: "category"},
		{name: "emptyCheckedBeforeLength", category: "payment", description: " ", wantField: "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateIntake(tt.category, tt.description)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateIntake() = %+v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateIntake() = nil, want error")
			}
			if verr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateIntakeBoundaryLength(t *testing.T) {
	// Exactly ten characters passes.
	if verr := ValidateIntake("orders", "abcdefghij"); verr != nil {
		t.Errorf("ten characters should pass, got %+v", verr)
	}
	if verr := ValidateIntake("orders", "abcdefghi"); verr == nil {
		t.Error("nine characters should fail")
	}
}
