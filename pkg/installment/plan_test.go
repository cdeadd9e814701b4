package installment

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/iwvelando/installment-calculator/pkg/testutil"
	"github.com/shopspring/decimal"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		term     int
		expected string
		standard bool
	}{
		{"4 weeks", 4, "1.3", true},
		{"8 weeks", 8, "1.4", true},
		{"12 weeks", 12, "1.5", true},
		{"16 weeks", 16, "1.6", true},
		{"20 weeks", 20, "1.7", true},
		{"24 weeks", 24, "1.8", true},
		{"Unknown term falls back", 10, "1", false},
		{"Zero term falls back", 0, "1", false},
		{"Negative term falls back", -4, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ok, msg := testutil.AssertDecimal(Multiplier(tt.term), tt.expected); !ok {
				t.Errorf("Multiplier(%d): %s", tt.term, msg)
			}
			if IsStandardTerm(tt.term) != tt.standard {
				t.Errorf("IsStandardTerm(%d) = %v, expected %v", tt.term, IsStandardTerm(tt.term), tt.standard)
			}
		})
	}
}

func TestTerms(t *testing.T) {
	terms := Terms()
	expected := []int{4, 8, 12, 16, 20, 24}
	if len(terms) != len(expected) {
		t.Fatalf("Terms() returned %d terms, expected %d", len(terms), len(expected))
	}
	for i := range expected {
		if terms[i] != expected[i] {
			t.Errorf("Terms()[%d] = %d, expected %d", i, terms[i], expected[i])
		}
	}

	terms[0] = 99
	if Terms()[0] != 4 {
		t.Error("Terms() must return a copy of the term table")
	}
}

func TestComputeExamples(t *testing.T) {
	tests := []struct {
		name        string
		input       PlanInput
		deposit     string
		weekly      string
		totalWeekly string
		totalToPay  string
		interest    string
	}{
		{
			name:        "1000 over 4 weeks",
			input:       PlanInput{CashPrice: testutil.Dec("1000"), Term: 4},
			deposit:     "400",
			weekly:      "195",
			totalWeekly: "780",
			totalToPay:  "1180",
			interest:    "180",
		},
		{
			name:        "500 over 12 weeks",
			input:       PlanInput{CashPrice: testutil.Dec("500"), Term: 12, StartDate: testutil.DatePtr("2024-01-01")},
			deposit:     "200",
			weekly:      "37.5",
			totalWeekly: "450",
			totalToPay:  "650",
			interest:    "150",
		},
		{
			name:        "2500 over 24 weeks",
			input:       PlanInput{CashPrice: testutil.Dec("2500"), Term: 24},
			deposit:     "1000",
			weekly:      "112.5", // (1500/24)*1.8
			totalWeekly: "2700",
			totalToPay:  "3700",
			interest:    "1200",
		},
		{
			name:        "Unknown term uses multiplier 1.0",
			input:       PlanInput{CashPrice: testutil.Dec("1000"), Term: 10},
			deposit:     "400",
			weekly:      "60",
			totalWeekly: "600",
			totalToPay:  "1000",
			interest:    "0",
		},
		{
			name:        "Negative price is clamped",
			input:       PlanInput{CashPrice: testutil.Dec("-250"), Term: 8},
			deposit:     "0",
			weekly:      "0",
			totalWeekly: "0",
			totalToPay:  "0",
			interest:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(tt.input)
			if err != nil {
				t.Fatalf("Compute() unexpected error: %v", err)
			}

			checks := []struct {
				field string
				got   decimal.Decimal
				want  string
			}{
				{"Deposit", result.Deposit, tt.deposit},
				{"WeeklyInstallment", result.WeeklyInstallment, tt.weekly},
				{"TotalWeeklyPayments", result.TotalWeeklyPayments, tt.totalWeekly},
				{"TotalToPay", result.TotalToPay, tt.totalToPay},
				{"Interest", result.Interest, tt.interest},
			}
			for _, c := range checks {
				if ok, msg := testutil.AssertDecimal(c.got, c.want); !ok {
					t.Errorf("%s: %s", c.field, msg)
				}
			}
		})
	}
}

func TestComputeZeroPrice(t *testing.T) {
	for _, term := range Terms() {
		result, err := Compute(PlanInput{CashPrice: decimal.Zero, Term: term})
		if err != nil {
			t.Fatalf("Compute(term=%d) unexpected error: %v", term, err)
		}
		if !result.Deposit.IsZero() || !result.WeeklyInstallment.IsZero() {
			t.Errorf("term %d: expected zero deposit and installment, got %s and %s",
				term, result.Deposit, result.WeeklyInstallment)
		}
		if !result.Interest.IsZero() {
			t.Errorf("term %d: expected zero interest, got %s", term, result.Interest)
		}
		if len(result.Schedule) != term {
			t.Errorf("term %d: expected %d schedule entries, got %d", term, term, len(result.Schedule))
		}
	}
}

func TestComputeProperties(t *testing.T) {
	prices := []string{"0", "1", "99.99", "123.45", "1000", "7777.77", "250000"}
	start := testutil.Date("2024-02-26")

	for _, p := range prices {
		for _, term := range Terms() {
			price := testutil.Dec(p)
			result, err := Compute(PlanInput{CashPrice: price, Term: term, StartDate: &start})
			if err != nil {
				t.Fatalf("Compute(%s, %d) unexpected error: %v", p, term, err)
			}

			if !result.Deposit.Equal(price.Mul(testutil.Dec("0.4"))) {
				t.Errorf("price %s term %d: deposit %s != 0.4 * price", p, term, result.Deposit)
			}

			priceF := price.InexactFloat64()
			expectedWeekly := (priceF * 0.6 / float64(term)) * Multiplier(term).InexactFloat64()
			if math.Abs(result.WeeklyInstallment.InexactFloat64()-expectedWeekly) > 1e-6 {
				t.Errorf("price %s term %d: weekly %s, expected %.6f", p, term, result.WeeklyInstallment, expectedWeekly)
			}

			expectedTotal := result.Deposit.Add(result.WeeklyInstallment.Mul(decimal.NewFromInt(int64(term))))
			if !result.TotalToPay.Equal(expectedTotal) {
				t.Errorf("price %s term %d: total %s, expected %s", p, term, result.TotalToPay, expectedTotal)
			}
			if !result.Interest.Equal(result.TotalToPay.Sub(price)) {
				t.Errorf("price %s term %d: interest %s != total - price", p, term, result.Interest)
			}

			if len(result.Schedule) != term {
				t.Fatalf("price %s term %d: schedule has %d entries", p, term, len(result.Schedule))
			}
			for i, entry := range result.Schedule {
				if entry.WeekIndex != i+1 {
					t.Errorf("entry %d has week index %d", i, entry.WeekIndex)
				}
				if !entry.Amount.Equal(result.WeeklyInstallment) {
					t.Errorf("entry %d amount %s != weekly %s", i, entry.Amount, result.WeeklyInstallment)
				}
				if entry.DueDate == nil {
					t.Fatalf("entry %d missing due date", i)
				}
				if want := datetime.AddWeeks(start, i+1); !entry.DueDate.Equal(want) {
					t.Errorf("entry %d due %s, expected %s", i, entry.DueDate.Format(datetime.DateLayout), want.Format(datetime.DateLayout))
				}
			}

			if result.EndDate == nil || !result.EndDate.Equal(datetime.AddWeeks(start, term)) {
				t.Errorf("price %s term %d: end date %v, expected %s", p, term, result.EndDate,
					datetime.AddWeeks(start, term).Format(datetime.DateLayout))
			}
		}
	}
}

func TestComputeDates(t *testing.T) {
	result, err := Compute(PlanInput{
		CashPrice: testutil.Dec("500"),
		Term:      12,
		StartDate: testutil.DatePtr("2024-01-01"),
	})
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}

	if result.StartDate == nil || result.StartDate.Format(datetime.DateLayout) != "2024-01-01" {
		t.Errorf("StartDate = %v, expected 2024-01-01", result.StartDate)
	}
	if result.EndDate == nil || result.EndDate.Format(datetime.DateLayout) != "2024-03-25" {
		t.Errorf("EndDate = %v, expected 2024-03-25", result.EndDate)
	}
	if got := result.Schedule[0].DueDate.Format(datetime.DateLayout); got != "2024-01-08" {
		t.Errorf("first due date = %s, expected 2024-01-08", got)
	}
	if got := result.Schedule[11].DueDate.Format(datetime.DateLayout); got != "2024-03-25" {
		t.Errorf("last due date = %s, expected 2024-03-25", got)
	}
}

func TestComputeWithoutStartDate(t *testing.T) {
	result, err := Compute(PlanInput{CashPrice: testutil.Dec("1000"), Term: 8})
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if result.StartDate != nil || result.EndDate != nil {
		t.Errorf("expected no start or end date, got %v and %v", result.StartDate, result.EndDate)
	}
	for _, entry := range result.Schedule {
		if entry.DueDate != nil {
			t.Errorf("week %d: expected no due date, got %v", entry.WeekIndex, entry.DueDate)
		}
	}
}

func TestComputeDropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("EAT", 3*60*60)
	start := time.Date(2024, time.January, 1, 22, 45, 0, 0, loc)

	result, err := Compute(PlanInput{CashPrice: testutil.Dec("100"), Term: 4, StartDate: &start})
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if got := result.EndDate.Format(datetime.DateLayout); got != "2024-01-29" {
		t.Errorf("EndDate = %s, expected 2024-01-29", got)
	}
	if result.EndDate.Hour() != 0 || result.EndDate.Location() != time.UTC {
		t.Errorf("EndDate should be midnight UTC, got %v", result.EndDate)
	}
}

func TestComputeInvalidTerm(t *testing.T) {
	for _, term := range []int{0, -1, -24} {
		_, err := Compute(PlanInput{CashPrice: testutil.Dec("1000"), Term: term})
		if !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("Compute(term=%d) error = %v, expected ErrInvalidTerm", term, err)
		}
	}
}

func TestComputeIsIndependentPerCall(t *testing.T) {
	in := PlanInput{CashPrice: testutil.Dec("1000"), Term: 4}

	first, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	first.Schedule[0].Amount = testutil.Dec("1")

	in.Term = 8
	second, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if len(second.Schedule) != 8 {
		t.Errorf("expected 8 entries after changing the term, got %d", len(second.Schedule))
	}

	in.Term = 4
	third, err := Compute(in)
	if err != nil {
		t.Fatalf("Compute() unexpected error: %v", err)
	}
	if ok, msg := testutil.AssertDecimal(third.Schedule[0].Amount, "195"); !ok {
		t.Errorf("recomputed first entry: %s", msg)
	}
}
