package viewmodel

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Edit-time validators. They return a message for the status line, or ""
// when the value is acceptable; submission-time checks live in the schema
// Collect functions.

func validateEmail(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "Email is required"
	}
	if !strings.Contains(v, "@") {
		return "Invalid email format"
	}
	return ""
}

// validateAmount accepts any non-negative decimal number.
func validateAmount(label string) func(string) string {
	return func(value string) string {
		v := strings.TrimSpace(value)
		if v == "" {
			return label + " is required"
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			return label + " must be numeric"
		}
		if d.IsNegative() {
			return label + " must be >= 0"
		}
		return ""
	}
}

// validateCount accepts any non-negative integer.
func validateCount(label string) func(string) string {
	return func(value string) string {
		v := strings.TrimSpace(value)
		if v == "" {
			return label + " is required"
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return label + " must be an integer"
		}
		if n < 0 {
			return label + " must be >= 0"
		}
		return ""
	}
}

// validateOptionalID accepts blank (meaning absent) or a non-negative
// integer.
func validateOptionalID(label string) func(string) string {
	return func(value string) string {
		v := strings.TrimSpace(value)
		if v == "" {
			return ""
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return label + " must be an integer"
		}
		if n < 0 {
			return label + " must be >= 0"
		}
		return ""
	}
}

// Submission-time parsing helpers shared by the Collect functions.

func parseAmount(value, label string) (decimal.Decimal, string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return decimal.Zero, label + " is required"
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, label + " must be numeric"
	}
	if d.IsNegative() {
		return decimal.Zero, label + " must be >= 0"
	}
	return d, ""
}

func parseCount(value, label string) (int, string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, label + " is required"
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, label + " must be an integer"
	}
	if n < 0 {
		return 0, label + " must be >= 0"
	}
	return n, ""
}

func parseOptionalID(value, label string) (*int, string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, ""
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, label + " must be an integer"
	}
	if n < 0 {
		return nil, label + " must be >= 0"
	}
	return &n, ""
}
