package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used by the calculator form.
type Theme struct {
	Name         string
	Border       lipgloss.Color // Card borders
	BorderAccent lipgloss.Color // Focused card border
	TextDim      lipgloss.Color // Hints
	TextMuted    lipgloss.Color // Labels
	TextPrimary  lipgloss.Color
	Accent       lipgloss.Color // Selected chip, highlighted rows
	AccentDim    lipgloss.Color // Selected chip background
	Green        lipgloss.Color
	Orange       lipgloss.Color
	Red          lipgloss.Color
}

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentDim:    lipgloss.Color("#1A3533"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:         "terminal",
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("14"),
	AccentDim:    lipgloss.Color("0"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
}

// Themes lists the selectable themes.
var Themes = []Theme{FlexokiDark, Terminal}

// ThemeByName returns the named theme, or FlexokiDark when unknown.
func ThemeByName(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

type styles struct {
	title       lipgloss.Style
	card        lipgloss.Style
	cardFocused lipgloss.Style
	cardTitle   lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	highlight   lipgloss.Style
	bold        lipgloss.Style
	red         lipgloss.Style
	chip        lipgloss.Style
	chipActive  lipgloss.Style
	hint        lipgloss.Style
	success     lipgloss.Style
	warning     lipgloss.Style
	modal       lipgloss.Style
}

func newStyles(t Theme) styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return styles{
		title:       lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1),
		card:        card,
		cardFocused: card.BorderForeground(t.BorderAccent),
		cardTitle:   lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true),
		label:       lipgloss.NewStyle().Foreground(t.TextMuted),
		value:       lipgloss.NewStyle().Foreground(t.TextPrimary),
		highlight:   lipgloss.NewStyle().Foreground(t.Accent),
		bold:        lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true),
		red:         lipgloss.NewStyle().Foreground(t.Red),
		chip:        lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1),
		chipActive:  lipgloss.NewStyle().Foreground(t.Accent).Background(t.AccentDim).Bold(true).Padding(0, 1),
		hint:        lipgloss.NewStyle().Foreground(t.TextDim),
		success:     lipgloss.NewStyle().Foreground(t.Green),
		warning:     lipgloss.NewStyle().Foreground(t.Orange),
		modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(t.BorderAccent).
			Padding(1, 2),
	}
}

// emphasis maps an output row emphasis onto a style.
func (s styles) emphasis(name string) lipgloss.Style {
	switch name {
	case "highlight":
		return s.highlight
	case "bold":
		return s.bold
	case "red":
		return s.red
	}
	return s.value
}
