package installment

import (
	"regexp"
	"strings"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// leadingNumber matches the longest numeric prefix of a price entry,
// e.g. "12.5" in "12.5 bob" or ".5" in ".5".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// ParseCashPrice coerces raw price text into a non-negative amount. Leading
// whitespace is ignored and the longest leading number is used; anything
// unparsable, negative or out of range becomes zero. It never fails.
func ParseCashPrice(raw string) decimal.Decimal {
	match := leadingNumber.FindString(strings.TrimSpace(raw))
	if match == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(match)
	if err != nil || !priceInRange(value) {
		return decimal.Zero
	}
	return mathutil.NonNegative(value)
}

// priceInRange reports whether value fits within MaxPriceIntegerDigits whole
// digits and MaxPriceScale fractional digits. Both checks read the exponent
// without expanding the coefficient, so "1e10000000" is rejected cheaply.
func priceInRange(value decimal.Decimal) bool {
	exp := int(value.Exponent())
	if exp < -constants.MaxPriceScale {
		return false
	}
	return value.NumDigits()+exp <= constants.MaxPriceIntegerDigits
}
