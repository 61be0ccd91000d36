package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreateSubmissionInput(t *testing.T) {
	tests := []struct {
		name       string
		input      CreateSubmissionInput
		wantFields []string
	}{
		{
			name: "valid input",
			input: CreateSubmissionInput{
				Name:              "Budi Santoso",
				PhoneNumber:       "0812-3456-7890",
				ProjectInterestID: "proj-1",
			},
		},
		{
			name:       "everything missing",
			input:      CreateSubmissionInput{},
			wantFields: []string{"name", "phone_number", "project_interest_id"},
		},
		{
			name: "phone too short",
			input: CreateSubmissionInput{
				Name:              "Budi",
				PhoneNumber:       "0812",
				ProjectInterestID: "proj-1",
			},
			wantFields: []string{"phone_number"},
		},
		{
			name: "phone with formatting is accepted",
			input: CreateSubmissionInput{
				Name:              "Budi",
				PhoneNumber:       "+62 812 3456 789",
				ProjectInterestID: "proj-1",
			},
		},
		{
			name: "notes too long",
			input: CreateSubmissionInput{
				Name:              "Budi",
				PhoneNumber:       "08123456789",
				ProjectInterestID: "proj-1",
				Notes:             strings.Repeat("x", 2001),
			},
			wantFields: []string{"notes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCreateSubmissionInput(tt.input)
			gotFields := make([]string, 0, len(errs))
			for _, e := range errs {
				gotFields = append(gotFields, e.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, gotFields)
		})
	}
}

func TestNormalizePhoneStripsFormatting(t *testing.T) {
	assert.Equal(t, "08123456789", normalizePhone(" 0812-3456-789 "))
	assert.Equal(t, "628123456789", normalizePhone("+62 812 3456 789"))
}
