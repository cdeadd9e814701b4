// Package validation provides common validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/installment"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateTerm checks that a term requested from outside the program is
// usable: at least one week and no more than constants.MaxTermWeeks. Terms
// outside the standard table pass, with a warning describing the fallback.
func ValidateTerm(term int) (warning string, err error) {
	if term <= 0 || term > constants.MaxTermWeeks {
		return "", fmt.Errorf("term must be between 1 and %d weeks, got %d", constants.MaxTermWeeks, term)
	}
	if !installment.IsStandardTerm(term) {
		return fmt.Sprintf("%d weeks is not a standard term %v; using multiplier 1.0", term, installment.Terms()), nil
	}
	return "", nil
}
