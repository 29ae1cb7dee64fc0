package report

import (
	"strings"

	"github.com/mealmesh/mealmesh/pkg/enums/problemcategory"
)

const MinDescriptionLength = 10

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateIntake checks a submission and returns the first failure only.
// Order matters: the category must be chosen and known before the
// description is looked at, and length is only checked on a non-empty
// description.
func ValidateIntake(category, description string) *ValidationError {
	if category == "" {
		return &ValidationError{Field: "category", Message: "Please select a category"}
	}
	if problemcategory.ByName(category) == nil {
		return &ValidationError{Field: "category", Message: "Unknown category"}
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return &ValidationError{Field: "description", Message: "Please describe the problem"}
	}
	if len(description) < MinDescriptionLength {
		return &ValidationError{Field: "description", Message: "Description must be at least 10 characters"}
	}

	return nil
}
