// Package testutil provides common utility functions for testing.
package testutil

import (
	"time"

	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/shopspring/decimal"
)

// Dec parses a decimal literal and panics on error.
// This is intended for use in tests where the literal is known to be valid.
func Dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Date parses a YYYY-MM-DD literal and panics on error.
func Date(value string) time.Time {
	return datetime.MustParseTime(datetime.DateLayout, value)
}

// DatePtr is Date returning a pointer, for optional date fields.
func DatePtr(value string) *time.Time {
	t := Date(value)
	return &t
}

// AssertDecimal reports whether got equals want, and a readable description
// of the mismatch when it does not.
func AssertDecimal(got decimal.Decimal, want string) (bool, string) {
	expected := Dec(want)
	if got.Equal(expected) {
		return true, ""
	}
	return false, "got " + got.String() + ", expected " + expected.String()
}
