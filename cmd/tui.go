package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytdb/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse opens the interactive catalog browser over the local store.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.openEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	model := ui.NewBrowseModel(engine.Store())
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
