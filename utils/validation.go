package utils

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if a number is positive
func ValidatePositive(value float64, fieldName string) error {
	if value <= 0 {
		return NewValidationError(fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if a number is non-negative
func ValidateNonNegative(value float64, fieldName string) error {
	if value < 0 {
		return NewValidationError(fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateOneOf checks that a value belongs to an allowed set
func ValidateOneOf(value, fieldName string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return NewValidationError(fmt.Sprintf("%s must be one of %s", fieldName, strings.Join(allowed, ", ")))
}

// ValidateRating checks a rating is inside the 1..5 scale
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return NewValidationError("rating must be between 1 and 5")
	}
	return nil
}

// ValidateLuhn checks a card number with the Luhn algorithm. Spaces are
// allowed; any other non-digit fails.
func ValidateLuhn(cardNumber string) bool {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) < 12 {
		return false
	}

	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
