// Package mathutil provides common money arithmetic helpers on top of
// shopspring/decimal.
package mathutil

import (
	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
func Round(val decimal.Decimal) decimal.Decimal {
	return val.Round(constants.DecimalPlaces)
}

// NonNegative clamps negative values to zero.
func NonNegative(val decimal.Decimal) decimal.Decimal {
	if val.IsNegative() {
		return decimal.Zero
	}
	return val
}

// ApplyRate multiplies a value by a fractional rate, e.g. 0.4 for 40%.
func ApplyRate(value, rate decimal.Decimal) decimal.Decimal {
	return value.Mul(rate)
}
