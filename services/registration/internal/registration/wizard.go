package registration

import "strings"

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const (
	Step1 = 1
	Step2 = 2
	Step3 = 3

	FirstStep = Step1
	LastStep  = Step3
)

// SubmissionData carries everything the three wizard steps collect.
type SubmissionData struct {
	BusinessName  string `json:"business_name"`
	City          string `json:"city"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	OwnerName     string `json:"owner_name,omitempty"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// Wizard is the 3-step registration flow. Next only advances when the
// current step validates; Prev always goes back. The wizard never skips
// a step in either direction.
type Wizard struct {
	Step int
	Data SubmissionData
}

func NewWizard() *Wizard {
	return &Wizard{Step: FirstStep}
}

// Next validates the current step and advances on success. At the last
// step, or with invalid data, it stays put and returns the errors.
func (w *Wizard) Next() []ValidationError {
	errs := ValidateStep(w.Step, w.Data)
	if len(errs) > 0 {
		return errs
	}
	if w.Step < LastStep {
		w.Step++
	}
	return nil
}

// Prev steps back without validating; editing bad input is the point of
// going back.
func (w *Wizard) Prev() {
	if w.Step > FirstStep {
		w.Step--
	}
}

// ValidateStep checks the fields one wizard step owns. Unknown step
// numbers validate nothing.
func ValidateStep(step int, data SubmissionData) []ValidationError {
	var errors []ValidationError

	switch step {
	case Step1:
		if len(strings.TrimSpace(data.BusinessName)) < 2 {
			errors = append(errors, ValidationError{
				Field:   "business_name",
				Message: "business name must be at least 2 characters",
			})
		}
		if !IsKnownCity(data.City) {
			errors = append(errors, ValidationError{
				Field:   "city",
				Message: "city must be one of the supported cities",
			})
		}
	case Step2:
		if len(data.Email) < 5 || !strings.Contains(data.Email, "@") {
			errors = append(errors, ValidationError{
				Field:   "email",
				Message: "a valid email address is required",
			})
		}
		if len(data.Password) < 6 {
			errors = append(errors, ValidationError{
				Field:   "password",
				Message: "password must be at least 6 characters",
			})
		}
	case Step3:
		if !data.TermsAccepted {
			errors = append(errors, ValidationError{
				Field:   "terms_accepted",
				Message: "the terms of service must be accepted",
			})
		}
	}

	return errors
}

// ValidateAll runs every step's validator, for the final submission.
func ValidateAll(data SubmissionData) []ValidationError {
	var errors []ValidationError
	for step := FirstStep; step <= LastStep; step++ {
		errors = append(errors, ValidateStep(step, data)...)
	}
	return errors
}
