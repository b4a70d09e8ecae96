package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytdb/internal/shared"
	"github.com/desertthunder/ytdb/internal/tasks"
	"github.com/desertthunder/ytdb/internal/ui"
	"github.com/urfave/cli/v3"
)

// ImportChannel runs a bulk listing import for the channel argument.
func (r *Runner) ImportChannel(ctx context.Context, cmd *cli.Command) error {
	channelKey := cmd.StringArg("channel")
	if channelKey == "" {
		return fmt.Errorf("%w: channel key", shared.ErrMissingArgument)
	}

	engine, err := r.openEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	if cmd.Bool("tui") {
		return r.importWithProgress(ctx, engine, channelKey)
	}

	metrics, err := engine.ImportListing(ctx, channelKey, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(metrics, true)
	}

	_, err = fmt.Fprintf(r.output, "found: %d\nfailed: %d\n", metrics.Found, metrics.Failed)
	return err
}

// importWithProgress runs the import in the background while a bubbletea
// progress bar consumes the update channel.
func (r *Runner) importWithProgress(ctx context.Context, engine *tasks.Engine, channelKey string) error {
	updates := make(chan tasks.ProgressUpdate, 16)
	result := make(chan error, 1)

	go func() {
		_, err := engine.ImportListing(ctx, channelKey, updates)
		close(updates)
		result <- err
	}()

	program := tea.NewProgram(ui.NewImportModel(updates))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return <-result
}

// GetItem ensures a single (kind, key) item exists locally and prints it.
func (r *Runner) GetItem(ctx context.Context, cmd *cli.Command) error {
	kind := cmd.StringArg("kind")
	key := cmd.StringArg("key")
	if kind == "" {
		return fmt.Errorf("%w: kind", shared.ErrMissingArgument)
	}

	engine, err := r.openEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	entity, err := engine.Ensure(ctx, kind, key)
	if err != nil {
		return err
	}
	if entity == nil {
		return fmt.Errorf("%w: %s %q (see the error log)", shared.ErrNotFound, kind, key)
	}

	if cmd.Bool("json") {
		return r.writeJSON(entity, cmd.Bool("pretty"))
	}

	_, err = fmt.Fprintf(r.output, "%s %s\n", entity.Kind(), entity.PrimaryKey())
	return err
}
