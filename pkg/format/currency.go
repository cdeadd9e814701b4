// Package format renders amounts, multipliers and dates for display.
package format

import (
	"strconv"
	"time"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with the Ksh prefix and exactly two
// decimals (e.g. "Ksh 1180.00", "Ksh -12.50").
func Currency(amount decimal.Decimal) string {
	return constants.CurrencyPrefix + " " + NumericCurrency(amount)
}

// NumericCurrency returns the two-decimal amount without a prefix or
// separators (e.g. "-12.50").
func NumericCurrency(amount decimal.Decimal) string {
	return amount.StringFixed(constants.DecimalPlaces)
}

// Multiplier renders a markup factor, e.g. "1.3x".
func Multiplier(m decimal.Decimal) string {
	return m.String() + "x"
}

// Weeks renders a term, e.g. "12 weeks".
func Weeks(term int) string {
	return strconv.Itoa(term) + " weeks"
}

// LongDate renders e.g. "Monday, Jan 8, 2024", or "" when absent.
func LongDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constants.LongDateLayout)
}

// ShortDate renders e.g. "Jan 8, 2024", or "" when absent.
func ShortDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(constants.ShortDateLayout)
}
