package usecase

import (
	"regexp"
	"strings"

	"github.com/renoxbert/leadmarket/internal/entity"
)

// Canadian postal code, with or without the middle separator (A1A 1A1).
var postalCodeRe = regexp.MustCompile(`^[ABCEGHJ-NPRSTVXYabceghj-nprstvxy]\d[ABCEGHJ-NPRSTVXYabceghj-nprstvxy][ -]?\d[ABCEGHJ-NPRSTVXYabceghj-nprstvxy]\d$`)

func ValidateCreateLeadInput(input CreateLeadInput) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(input.Title) == "" {
		errors = append(errors, ValidationError{"title", "is required"})
	} else if len(input.Title) < 3 {
		errors = append(errors, ValidationError{"title", "must have at least 3 characters"})
	} else if len(input.Title) > 200 {
		errors = append(errors, ValidationError{"title", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Description) == "" {
		errors = append(errors, ValidationError{"description", "is required"})
	} else if len(input.Description) < 10 {
		errors = append(errors, ValidationError{"description", "must have at least 10 characters"})
	}

	// Empty category is allowed: the classifier fills it from the description.
	if input.Category != "" && !entity.ValidCategory(input.Category) {
		errors = append(errors, ValidationError{"category", "is not a known trade category"})
	}

	if strings.TrimSpace(input.PostalCode) == "" {
		errors = append(errors, ValidationError{"postal_code", "is required"})
	} else if !isValidPostalCode(input.PostalCode) {
		errors = append(errors, ValidationError{"postal_code", "must be a valid postal code (A1A 1A1)"})
	}

	if strings.TrimSpace(input.City) == "" {
		errors = append(errors, ValidationError{"city", "is required"})
	}
	if strings.TrimSpace(input.Province) == "" {
		errors = append(errors, ValidationError{"province", "is required"})
	}

	if input.BudgetMin != nil && *input.BudgetMin < 0 {
		errors = append(errors, ValidationError{"budget_min", "must not be negative"})
	}
	if input.BudgetMax != nil && *input.BudgetMax < 0 {
		errors = append(errors, ValidationError{"budget_max", "must not be negative"})
	}
	if input.BudgetMin != nil && input.BudgetMax != nil && *input.BudgetMin > *input.BudgetMax {
		errors = append(errors, ValidationError{"budget_max", "must be greater than or equal to budget_min"})
	}

	return errors
}

func isValidPostalCode(postalCode string) bool {
	return postalCodeRe.MatchString(strings.TrimSpace(postalCode))
}
