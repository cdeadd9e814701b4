package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/installment-calculator/internal/tui"
	"github.com/iwvelando/installment-calculator/pkg/installment"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive calculator form",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// The alternate screen would be overwritten by log lines on stderr,
			// so the form only logs when a log file is configured.
			logger := c.logger
			if c.conf.Logging.OutputFile == "" {
				logger = zap.NewNop()
			}

			defaults, err := c.conf.PlanInput()
			if err != nil {
				c.logger.Warn("ignoring configured defaults",
					zap.String("op", "main.tui"),
					zap.Error(err),
				)
				defaults = installment.PlanInput{}
			}

			theme := tui.ThemeByName(c.conf.TUI.Theme)
			if theme.Name != tui.Terminal.Name {
				lipgloss.SetColorProfile(termenv.TrueColor)
			}

			p := tea.NewProgram(tui.NewApp(logger, theme, defaults), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}
			return nil
		},
	}
}
