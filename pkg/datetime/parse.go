// Package datetime provides calendar-date utility functions.
package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/teambition/rrule-go"
)

const (
	// DateLayout is the format expected in config files and requests and is
	// also the machine-readable output date format.
	DateLayout = constants.DateLayout
)

// ErrStartDateInPast is returned when a plan would start before today.
var ErrStartDateInPast = errors.New("start date is before today")

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD string into a calendar day at midnight UTC.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// ParseOptionalDate parses value like ParseDate but treats a blank string as
// "no date" and returns nil.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DateOf returns the calendar day of t as midnight UTC, dropping the time of
// day and the zone.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddWeeks returns the calendar day n weeks (n*7 days) after t.
func AddWeeks(t time.Time, n int) time.Time {
	return DateOf(t).AddDate(0, 0, n*constants.DaysPerWeek)
}

// WeeklyDueDates returns the count weekly occurrences that follow start,
// i.e. start+1 week through start+count weeks.
func WeeklyDueDates(start time.Time, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, nil
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.WEEKLY,
		Interval: 1,
		Count:    count,
		Dtstart:  AddWeeks(start, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly recurrence: %w", err)
	}
	return rule.All(), nil
}

// ValidateStartDate enforces that start is not before the calendar day of now.
func ValidateStartDate(start, now time.Time) error {
	if DateOf(start).Before(DateOf(now)) {
		return fmt.Errorf("%w: %s < %s", ErrStartDateInPast,
			DateOf(start).Format(DateLayout), DateOf(now).Format(DateLayout))
	}
	return nil
}

// Format renders an optional date in DateLayout, or "" when absent.
func Format(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
