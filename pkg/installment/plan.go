// Package installment implements the installment payment plan calculator:
// a fixed deposit, a term-dependent markup on the balance, and a weekly
// payment schedule.
package installment

import (
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/iwvelando/installment-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// ErrInvalidTerm is returned when a plan is requested for zero or fewer weeks.
var ErrInvalidTerm = errors.New("term must be at least one week")

var depositRate = decimal.RequireFromString(constants.DepositRate)

// multipliers maps each standard term (in weeks) to its markup factor.
var multipliers = map[int]decimal.Decimal{
	4:  decimal.RequireFromString("1.3"),
	8:  decimal.RequireFromString("1.4"),
	12: decimal.RequireFromString("1.5"),
	16: decimal.RequireFromString("1.6"),
	20: decimal.RequireFromString("1.7"),
	24: decimal.RequireFromString("1.8"),
}

// standardTerms lists the keys of multipliers in ascending order.
var standardTerms = []int{4, 8, 12, 16, 20, 24}

// PlanInput holds everything a plan is derived from.
type PlanInput struct {
	CashPrice decimal.Decimal
	Term      int
	StartDate *time.Time
}

// ScheduleEntry is one weekly payment.
type ScheduleEntry struct {
	WeekIndex int             `json:"week"`
	DueDate   *time.Time      `json:"dueDate,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// PlanResult holds the derived plan. It is recreated from scratch for every
// input and never updated in place.
type PlanResult struct {
	CashPrice           decimal.Decimal `json:"cashPrice"`
	Term                int             `json:"weeks"`
	Multiplier          decimal.Decimal `json:"multiplier"`
	Deposit             decimal.Decimal `json:"deposit"`
	WeeklyInstallment   decimal.Decimal `json:"weeklyInstallment"`
	TotalWeeklyPayments decimal.Decimal `json:"totalWeeklyPayments"`
	TotalToPay          decimal.Decimal `json:"totalToPay"`
	Interest            decimal.Decimal `json:"interest"`
	StartDate           *time.Time      `json:"startDate,omitempty"`
	EndDate             *time.Time      `json:"endDate,omitempty"`
	Schedule            []ScheduleEntry `json:"schedule"`
}

// Terms returns the standard terms in ascending order.
func Terms() []int {
	return append([]int(nil), standardTerms...)
}

// IsStandardTerm reports whether term has an entry in the multiplier table.
func IsStandardTerm(term int) bool {
	_, ok := multipliers[term]
	return ok
}

// Multiplier returns the markup factor for term, or 1.0 for terms outside
// the standard table.
func Multiplier(term int) decimal.Decimal {
	if m, ok := multipliers[term]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// Compute derives the full payment plan for in. It has no side effects; the
// only failure is a term of zero or fewer weeks.
func Compute(in PlanInput) (PlanResult, error) {
	if in.Term <= 0 {
		return PlanResult{}, fmt.Errorf("%w: got %d", ErrInvalidTerm, in.Term)
	}

	cashPrice := mathutil.NonNegative(in.CashPrice)
	weeks := decimal.NewFromInt(int64(in.Term))
	multiplier := Multiplier(in.Term)

	deposit := mathutil.ApplyRate(cashPrice, depositRate)
	weekly := cashPrice.Sub(deposit).Div(weeks).Mul(multiplier)
	totalWeekly := weekly.Mul(weeks)
	totalToPay := deposit.Add(totalWeekly)

	result := PlanResult{
		CashPrice:           cashPrice,
		Term:                in.Term,
		Multiplier:          multiplier,
		Deposit:             deposit,
		WeeklyInstallment:   weekly,
		TotalWeeklyPayments: totalWeekly,
		TotalToPay:          totalToPay,
		Interest:            totalToPay.Sub(cashPrice),
		Schedule:            make([]ScheduleEntry, in.Term),
	}

	var dueDates []time.Time
	if in.StartDate != nil {
		start := datetime.DateOf(*in.StartDate)
		end := datetime.AddWeeks(start, in.Term)
		result.StartDate = &start
		result.EndDate = &end

		var err error
		dueDates, err = datetime.WeeklyDueDates(start, in.Term)
		if err != nil {
			return PlanResult{}, err
		}
	}

	for i := range result.Schedule {
		entry := ScheduleEntry{WeekIndex: i + 1, Amount: weekly}
		if i < len(dueDates) {
			due := dueDates[i]
			entry.DueDate = &due
		}
		result.Schedule[i] = entry
	}

	return result, nil
}
