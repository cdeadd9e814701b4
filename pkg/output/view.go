package output

import (
	"fmt"

	"github.com/iwvelando/installment-calculator/pkg/format"
	"github.com/iwvelando/installment-calculator/pkg/installment"
)

// Row is one labelled display value.
type Row struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Emphasis string `json:"emphasis,omitempty"` // highlight, bold, red
}

// ScheduleRow is one line of the rendered payment schedule.
type ScheduleRow struct {
	Week   int    `json:"week"` // 0 for the initial deposit
	Title  string `json:"title"`
	Date   string `json:"date,omitempty"`
	Amount string `json:"amount"`
}

// Divider marks a visual separator between row groups.
var Divider = Row{Label: "-"}

// Breakdown returns the always-visible payment breakdown.
func Breakdown(result installment.PlanResult) []Row {
	return []Row{
		{Label: "Cash Price", Value: format.Currency(result.CashPrice)},
		{Label: "Deposit (40%)", Value: format.Currency(result.Deposit), Emphasis: "highlight"},
		{Label: "Weekly Installment", Value: format.Currency(result.WeeklyInstallment), Emphasis: "highlight"},
		{Label: "Number of Weeks", Value: format.Weeks(result.Term)},
	}
}

// Summary returns the rows of the payment summary dialog. Start and end
// dates are only included when the plan has a start date.
func Summary(result installment.PlanResult) []Row {
	rows := []Row{
		{Label: "Cash Price", Value: format.Currency(result.CashPrice)},
		Divider,
	}
	if result.StartDate != nil {
		rows = append(rows,
			Row{Label: "Start Date", Value: format.ShortDate(result.StartDate)},
			Row{Label: "End Date", Value: format.ShortDate(result.EndDate)},
			Divider,
		)
	}
	rows = append(rows,
		Row{Label: "Deposit (40%)", Value: format.Currency(result.Deposit)},
		Row{Label: "Number of Weeks", Value: format.Weeks(result.Term)},
		Row{Label: "Multiplier", Value: format.Multiplier(result.Multiplier)},
		Row{Label: "Weekly Installment", Value: format.Currency(result.WeeklyInstallment)},
		Divider,
		Row{Label: "Total Weekly Payments", Value: format.Currency(result.TotalWeeklyPayments)},
		Row{Label: "Total to Pay", Value: format.Currency(result.TotalToPay), Emphasis: "bold"},
		Row{Label: "Interest Amount", Value: format.Currency(result.Interest), Emphasis: "red"},
	)
	return rows
}

// Schedule returns the initial deposit followed by one row per week.
func Schedule(result installment.PlanResult) []ScheduleRow {
	rows := make([]ScheduleRow, 0, len(result.Schedule)+1)

	deposit := ScheduleRow{Title: "Initial Deposit", Amount: format.Currency(result.Deposit)}
	if result.StartDate != nil {
		deposit.Date = format.ShortDate(result.StartDate)
		deposit.Title = fmt.Sprintf("Initial Deposit - %s", deposit.Date)
	}
	rows = append(rows, deposit)

	for _, entry := range result.Schedule {
		row := ScheduleRow{
			Week:   entry.WeekIndex,
			Title:  fmt.Sprintf("Week %d", entry.WeekIndex),
			Amount: format.Currency(entry.Amount),
		}
		if entry.DueDate != nil {
			row.Date = format.ShortDate(entry.DueDate)
			row.Title = fmt.Sprintf("Week %d - %s", entry.WeekIndex, row.Date)
		}
		rows = append(rows, row)
	}
	return rows
}
