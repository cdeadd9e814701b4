// Package tui implements the interactive terminal form for the installment
// calculator.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/installment-calculator/pkg/constants"
	"github.com/iwvelando/installment-calculator/pkg/datetime"
	"github.com/iwvelando/installment-calculator/pkg/format"
	"github.com/iwvelando/installment-calculator/pkg/installment"
	"github.com/iwvelando/installment-calculator/pkg/output"
	"go.uber.org/zap"
)

// ConfirmedMessage is shown once the user confirms the payment summary.
const ConfirmedMessage = "Payment plan confirmed!"

const (
	focusPrice = iota
	focusStartDate
	focusTerm
	focusCount // sentinel
)

const (
	minContentWidth = 40
	maxContentWidth = 72
)

// App is the bubbletea model for the calculator form. The plan shown is
// always recomputed from the current inputs.
type App struct {
	logger *zap.Logger
	styles styles
	now    func() time.Time

	price     textinput.Model
	startDate textinput.Model
	focus     int
	terms     []int
	termIndex int

	input   installment.PlanInput
	result  installment.PlanResult
	dateErr string

	showSummary bool
	notice      string
	width       int
}

// NewApp builds the form pre-filled from defaults. A zero Term selects the
// first standard term.
func NewApp(logger *zap.Logger, theme Theme, defaults installment.PlanInput) App {
	if logger == nil {
		logger = zap.NewNop()
	}

	price := textinput.New()
	price.Placeholder = "0.00"
	price.CharLimit = 32
	price.Width = 20
	if defaults.CashPrice.IsPositive() {
		price.SetValue(defaults.CashPrice.String())
	}
	price.Focus()

	start := textinput.New()
	start.Placeholder = "YYYY-MM-DD (optional)"
	start.CharLimit = len(constants.DateLayout)
	start.Width = 24
	if defaults.StartDate != nil {
		start.SetValue(datetime.Format(defaults.StartDate))
	}

	a := App{
		logger:    logger,
		styles:    newStyles(theme),
		now:       time.Now,
		price:     price,
		startDate: start,
		focus:     focusPrice,
		terms:     installment.Terms(),
		termIndex: -1,
	}

	term := defaults.Term
	if term <= 0 {
		term = a.terms[0]
	}
	for i, t := range a.terms {
		if t == term {
			a.termIndex = i
		}
	}
	a.input.Term = term

	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Input returns the inputs the current plan was computed from.
func (a App) Input() installment.PlanInput {
	return a.input
}

// Result returns the current plan.
func (a App) Result() installment.PlanResult {
	return a.result
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil
	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Cursor blink and other input housekeeping.
	var priceCmd, dateCmd tea.Cmd
	a.price, priceCmd = a.price.Update(msg)
	a.startDate, dateCmd = a.startDate.Update(msg)
	return a, tea.Batch(priceCmd, dateCmd)
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if a.showSummary {
		switch key {
		case "esc":
			a.showSummary = false
		case "enter":
			a.showSummary = false
			a.notice = ConfirmedMessage
			a.logger.Info("payment plan confirmed",
				zap.String("op", "tui.updateKey"),
				zap.String("cashPrice", a.result.CashPrice.String()),
				zap.Int("weeks", a.result.Term),
			)
		}
		return a, nil
	}

	switch key {
	case "esc":
		return a, tea.Quit
	case "tab", "down":
		return a.setFocus((a.focus + 1) % focusCount)
	case "shift+tab", "up":
		return a.setFocus((a.focus + focusCount - 1) % focusCount)
	case "ctrl+s":
		a.openSummary()
		return a, nil
	}

	if a.focus == focusTerm {
		switch key {
		case "left", "h":
			a.moveTerm(-1)
		case "right", "l":
			a.moveTerm(1)
		case "s", "enter":
			a.openSummary()
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	return a.updateFocusedInput(msg)
}

func (a App) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.focus {
	case focusPrice:
		a.price, cmd = a.price.Update(msg)
	case focusStartDate:
		a.startDate, cmd = a.startDate.Update(msg)
	default:
		return a, nil
	}
	a.notice = ""
	a.recompute()
	return a, cmd
}

func (a App) setFocus(focus int) (tea.Model, tea.Cmd) {
	a.focus = focus
	a.price.Blur()
	a.startDate.Blur()

	var cmd tea.Cmd
	switch focus {
	case focusPrice:
		cmd = a.price.Focus()
	case focusStartDate:
		cmd = a.startDate.Focus()
	}
	return a, cmd
}

func (a *App) moveTerm(delta int) {
	switch {
	case a.termIndex < 0:
		a.termIndex = 0
	default:
		a.termIndex += delta
		if a.termIndex < 0 {
			a.termIndex = 0
		}
		if a.termIndex >= len(a.terms) {
			a.termIndex = len(a.terms) - 1
		}
	}
	a.input.Term = a.terms[a.termIndex]
	a.notice = ""
	a.recompute()
}

func (a *App) openSummary() {
	if a.result.CashPrice.IsPositive() {
		a.showSummary = true
		a.notice = ""
	}
}

// recompute rebuilds the input from the form fields and derives a fresh plan.
func (a *App) recompute() {
	a.input = installment.PlanInput{
		CashPrice: installment.ParseCashPrice(a.price.Value()),
		Term:      a.input.Term,
		StartDate: a.parseStartDate(),
	}

	result, err := installment.Compute(a.input)
	if err != nil {
		a.logger.Error("failed to compute plan",
			zap.String("op", "tui.recompute"),
			zap.Int("weeks", a.input.Term),
			zap.Error(err),
		)
		return
	}
	a.result = result
}

func (a *App) parseStartDate() *time.Time {
	a.dateErr = ""
	start, err := datetime.ParseOptionalDate(a.startDate.Value())
	if err != nil {
		a.dateErr = "Enter the date as YYYY-MM-DD"
		return nil
	}
	if start == nil {
		return nil
	}
	if err := datetime.ValidateStartDate(*start, a.now()); err != nil {
		if errors.Is(err, datetime.ErrStartDateInPast) {
			a.dateErr = "Start date cannot be before today"
		} else {
			a.dateErr = err.Error()
		}
		return nil
	}
	return start
}

func (a App) contentWidth() int {
	w := a.width - 2
	if w > maxContentWidth || a.width == 0 {
		w = maxContentWidth
	}
	if w < minContentWidth {
		w = minContentWidth
	}
	return w
}

// View implements tea.Model.
func (a App) View() string {
	if a.showSummary {
		return a.viewSummary()
	}

	s := a.styles
	w := a.contentWidth()

	var b strings.Builder
	b.WriteString(s.title.Render("Installment Calculator"))
	b.WriteString("\n")

	b.WriteString(a.card(focusPrice, "Cash Price",
		s.label.Render(constants.CurrencyPrefix+" ")+a.price.View(), w))
	b.WriteString("\n")

	b.WriteString(a.card(focusStartDate, "Payment Start Date", a.viewStartDate(), w))
	b.WriteString("\n")

	b.WriteString(a.card(focusTerm, "Number of Weeks", a.viewTerms(), w))
	b.WriteString("\n")

	b.WriteString(a.card(-1, "Payment Breakdown", a.viewRows(output.Breakdown(a.result)), w))
	b.WriteString("\n")

	if a.result.CashPrice.IsPositive() {
		b.WriteString(a.card(-1, "Payment Schedule", a.viewSchedule(), w))
		b.WriteString("\n")
	}

	if a.notice != "" {
		b.WriteString(s.success.Render("✓ " + a.notice))
		b.WriteString("\n")
	}

	help := "[tab] next field  [←/→] weeks  [ctrl+s] summary  [esc] quit"
	if !a.result.CashPrice.IsPositive() {
		help = "[tab] next field  [←/→] weeks  [esc] quit"
	}
	b.WriteString(s.hint.Render(help))

	return b.String()
}

func (a App) card(field int, title, body string, width int) string {
	style := a.styles.card
	if field >= 0 && field == a.focus {
		style = a.styles.cardFocused
	}
	return style.Width(width).Render(a.styles.cardTitle.Render(title) + "\n" + body)
}

func (a App) viewStartDate() string {
	s := a.styles
	var b strings.Builder
	b.WriteString(a.startDate.View())

	if a.dateErr != "" {
		b.WriteString("\n")
		b.WriteString(s.warning.Render(a.dateErr))
		return b.String()
	}
	if a.result.StartDate != nil {
		b.WriteString("\n")
		b.WriteString(s.value.Render(format.LongDate(a.result.StartDate)))
		b.WriteString("\n")
		b.WriteString(s.success.Render("✓ Payment ends on " + format.LongDate(a.result.EndDate)))
	}
	return b.String()
}

func (a App) viewTerms() string {
	s := a.styles
	chips := make([]string, 0, len(a.terms))
	for i, term := range a.terms {
		label := format.Weeks(term)
		if i == a.termIndex {
			chips = append(chips, s.chipActive.Render(label))
		} else {
			chips = append(chips, s.chip.Render(label))
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chips...))
	b.WriteString("\n")
	if a.termIndex < 0 {
		b.WriteString(s.warning.Render(fmt.Sprintf("Custom term: %s", format.Weeks(a.input.Term))))
		b.WriteString("\n")
	}
	b.WriteString(s.label.Render("Multiplier: " + format.Multiplier(a.result.Multiplier)))
	return b.String()
}

func (a App) viewRows(rows []output.Row) string {
	s := a.styles
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if row == output.Divider {
			lines = append(lines, s.hint.Render(strings.Repeat("─", 36)))
			continue
		}
		lines = append(lines,
			s.label.Render(fmt.Sprintf("%-22s", row.Label+":"))+s.emphasis(row.Emphasis).Render(row.Value))
	}
	return strings.Join(lines, "\n")
}

func (a App) viewSchedule() string {
	s := a.styles
	rows := output.Schedule(a.result)
	lines := make([]string, 0, len(rows)+1)
	for i, row := range rows {
		amount := s.value.Render(row.Amount)
		if row.Week == 0 {
			amount = s.highlight.Render(row.Amount)
		}
		lines = append(lines, s.label.Render(fmt.Sprintf("%-28s", row.Title))+amount)
		if i == 0 {
			lines = append(lines, s.hint.Render(strings.Repeat("─", 36)))
		}
	}
	return strings.Join(lines, "\n")
}

func (a App) viewSummary() string {
	s := a.styles
	body := s.cardTitle.Render("Payment Summary") + "\n\n" +
		a.viewRows(output.Summary(a.result)) + "\n\n" +
		s.hint.Render("[esc] Close  [enter] Confirm")
	return s.modal.Render(body)
}
