package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

type program interface {
	Run() (tea.Model, error)
}

var newProgram = func(model tea.Model) program {
	// Signals belong to the shutdown handler, which cancels ctx.
	return tea.NewProgram(model, tea.WithAltScreen(), tea.WithoutSignalHandler())
}

// Run shows the dashboard until the user quits or ctx is done.
func Run(ctx context.Context, options DashboardOptions) error {
	if _, err := newProgram(NewDashboard(ctx, options)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
