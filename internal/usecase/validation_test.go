package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validLeadInput() CreateLeadInput {
	return CreateLeadInput{
		Title:       "Replace roof shingles",
		Description: "Two-storey detached, asphalt shingles lifting on the south side.",
		Category:    "Roofing",
		City:        "Ottawa",
		Province:    "ON",
		PostalCode:  "K1A 0B1",
	}
}

func fieldsWithErrors(errs ValidationErrors) map[string]bool {
	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	return fields
}

func TestValidateCreateLeadInputValid(t *testing.T) {
	assert.Empty(t, ValidateCreateLeadInput(validLeadInput()))
}

func TestValidateCreateLeadInputMissingFields(t *testing.T) {
	errs := ValidateCreateLeadInput(CreateLeadInput{})
	fields := fieldsWithErrors(errs)

	assert.True(t, fields["title"])
	assert.True(t, fields["description"])
	assert.True(t, fields["postal_code"])
	assert.True(t, fields["city"])
	assert.True(t, fields["province"])
}

func TestValidateCreateLeadInputPostalCodes(t *testing.T) {
	cases := []struct {
		postal string
		valid  bool
	}{
		{"K1A 0B1", true},
		{"k1a 0b1", true},
		{"K1A0B1", true},
		{"K1A-0B1", true},
		{"12345", false},
		{"K1A 0B", false},
		{"D1A 0B1", false}, // D is not used in Canadian postal codes
		{"", false},
	}

	for _, tc := range cases {
		input := validLeadInput()
		input.PostalCode = tc.postal
		errs := ValidateCreateLeadInput(input)
		if tc.valid {
			assert.Empty(t, errs, tc.postal)
		} else {
			assert.True(t, fieldsWithErrors(errs)["postal_code"], tc.postal)
		}
	}
}

func TestValidateCreateLeadInputUnknownCategory(t *testing.T) {
	input := validLeadInput()
	input.Category = "Moon Landings"

	errs := ValidateCreateLeadInput(input)
	assert.True(t, fieldsWithErrors(errs)["category"])
}

func TestValidateCreateLeadInputEmptyCategoryAllowed(t *testing.T) {
	// The classifier fills empty categories later.
	input := validLeadInput()
	input.Category = ""

	assert.Empty(t, ValidateCreateLeadInput(input))
}

func TestValidateCreateLeadInputBudgetRange(t *testing.T) {
	min, max := 10000, 5000
	input := validLeadInput()
	input.BudgetMin = &min
	input.BudgetMax = &max

	errs := ValidateCreateLeadInput(input)
	assert.True(t, fieldsWithErrors(errs)["budget_max"])

	negative := -1
	input = validLeadInput()
	input.BudgetMin = &negative
	errs = ValidateCreateLeadInput(input)
	assert.True(t, fieldsWithErrors(errs)["budget_min"])
}
