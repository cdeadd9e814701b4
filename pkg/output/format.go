// Package output provides utilities for formatting and displaying payment plans.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/iwvelando/installment-calculator/pkg/format"
	"github.com/iwvelando/installment-calculator/pkg/installment"
	"github.com/iwvelando/installment-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report bundles a plan with its preformatted views.
type Report struct {
	Plan      installment.PlanResult `json:"plan"`
	Breakdown []Row                  `json:"breakdown"`
	Summary   []Row                  `json:"summary"`
	Schedule  []ScheduleRow          `json:"schedule"`
}

// NewReport builds every view of result.
func NewReport(result installment.PlanResult) Report {
	return Report{
		Plan:      result,
		Breakdown: Breakdown(result),
		Summary:   Summary(result),
		Schedule:  Schedule(result),
	}
}

// Write renders result in the named output format.
func Write(w io.Writer, outputFormat string, result installment.PlanResult, showSummary bool) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result, showSummary)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result installment.PlanResult, showSummary bool) error {
	p := message.NewPrinter(language.English)

	var buf bytes.Buffer
	buf.WriteString("--- Payment Breakdown ---\n")
	writeRows(&buf, Breakdown(result))

	if result.CashPrice.IsPositive() {
		buf.WriteString("\n--- Payment Schedule ---\n")
		buf.WriteString("Week | Due Date     | Amount\n")
		buf.WriteString("____ | ____________ | ______\n")
		for _, row := range Schedule(result) {
			week := "dep"
			amount := result.Deposit
			if row.Week > 0 {
				week = strconv.Itoa(row.Week)
				amount = result.Schedule[row.Week-1].Amount
			}
			date := row.Date
			if date == "" {
				date = "-"
			}
			_, _ = p.Fprintf(&buf, "%-4s | %-12s | %s %.2f\n", week, date, constants.CurrencyPrefix, displayFloat(amount))
		}
	}

	if showSummary {
		buf.WriteString("\n--- Payment Summary ---\n")
		writeRows(&buf, Summary(result))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// CsvFormat outputs the schedule in comma-separated value format, with the
// deposit as week 0.
func CsvFormat(w io.Writer, result installment.PlanResult) error {
	writer := csv.NewWriter(w)
	records := [][]string{{"week", "date", "amount"}}
	records = append(records, []string{"0", datetime.Format(result.StartDate), mathutil.Round(result.Deposit).StringFixed(constants.DecimalPlaces)})
	for _, entry := range result.Schedule {
		records = append(records, []string{
			strconv.Itoa(entry.WeekIndex),
			datetime.Format(entry.DueDate),
			mathutil.Round(entry.Amount).StringFixed(constants.DecimalPlaces),
		})
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// CsvString returns the CSV rendering of result.
func CsvString(result installment.PlanResult) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, result); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat outputs the full report as indented JSON.
func JSONFormat(w io.Writer, result installment.PlanResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(NewReport(result)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// PrettyTerms outputs the term table.
func PrettyTerms(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString("Weeks | Multiplier\n")
	buf.WriteString("_____ | __________\n")
	for _, term := range installment.Terms() {
		fmt.Fprintf(&buf, "%-5d | %s\n", term, format.Multiplier(installment.Multiplier(term)))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func writeRows(buf *bytes.Buffer, rows []Row) {
	width := 0
	for _, row := range rows {
		if len(row.Label) > width {
			width = len(row.Label)
		}
	}
	for _, row := range rows {
		if row == Divider {
			buf.WriteString("\n")
			continue
		}
		fmt.Fprintf(buf, "%-*s  %s\n", width+1, row.Label+":", row.Value)
	}
}

// displayFloat rounds to cents before converting, so %.2f never re-rounds.
func displayFloat(d decimal.Decimal) float64 {
	return mathutil.Round(d).InexactFloat64()
}
