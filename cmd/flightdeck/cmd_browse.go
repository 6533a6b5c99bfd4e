package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mmcdole/flightdeck/internal/tui"
)

func (c *cli) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse every list in an interactive table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model := tui.New(tui.Deps{
				Cache:       c.app.cache,
				Aircraft:    c.app.aircraft,
				Waypoints:   c.app.waypoints,
				Flights:     c.app.flights,
				Search:      c.app.search,
				Toasts:      c.app.toasts,
				Logger:      c.app.logger,
				PageSize:    c.app.cfg.Table.PageSize,
				FuzzyFilter: c.app.cfg.UI.FuzzyFilter,
			})
			defer model.Close()

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)

			c.app.logger.Info("starting TUI")
			if _, err := p.Run(); err != nil {
				c.app.logger.Error("TUI error", "error", err)
				return fmt.Errorf("TUI error: %w", err)
			}
			c.app.logger.Info("shutting down")
			return nil
		},
	}
}
