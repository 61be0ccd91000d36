package usecase

import (
	"fmt"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var nonDigits = regexp.MustCompile(`\D`)

func ValidateCreateSubmissionInput(input CreateSubmissionInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errs = append(errs, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.PhoneNumber) == "" {
		errs = append(errs, ValidationError{"phone_number", "is required"})
	} else if !isValidPhoneNumber(input.PhoneNumber) {
		errs = append(errs, ValidationError{"phone_number", "must be a valid phone number"})
	}

	if strings.TrimSpace(input.ProjectInterestID) == "" {
		errs = append(errs, ValidationError{"project_interest_id", "is required"})
	}

	if len(input.Notes) > 2000 {
		errs = append(errs, ValidationError{"notes", "must not exceed 2000 characters"})
	}

	return errs
}

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	return len(cleaned) >= 9 && len(cleaned) <= 15
}

// normalizePhone strips formatting so "0812-3456" and "08123456" share a
// dedup key.
func normalizePhone(phone string) string {
	return nonDigits.ReplaceAllString(strings.TrimSpace(phone), "")
}

func joinValidationErrors(errs []ValidationError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}
