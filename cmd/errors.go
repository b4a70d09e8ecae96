package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytdb/internal/formatter"
	"github.com/desertthunder/ytdb/internal/shared"
	"github.com/urfave/cli/v3"
)

// ListErrors prints the durable error log.
func (r *Runner) ListErrors(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.openEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	records := engine.ErrorLog().Records()

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if cmd.Bool("csv") {
		data, err := formatter.ExportErrorsCSV(records)
		if err != nil {
			return err
		}
		_, err = r.output.Write(data)
		return err
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(r.output, "no recorded failures")
		return err
	}

	for _, rec := range records {
		_, err := fmt.Fprintf(r.output, "%s  %s/%s  %s: %s\n",
			rec.RecordedAt.Format("2006-01-02 15:04:05"), rec.ItemType, rec.ItemID, rec.Operation, rec.Message)
		if err != nil {
			return err
		}
	}
	return nil
}

// ExportChannel writes a channel's imported videos to CSV and Markdown files.
func (r *Runner) ExportChannel(ctx context.Context, cmd *cli.Command) error {
	channelKey := cmd.StringArg("channel")
	if channelKey == "" {
		return fmt.Errorf("%w: channel key", shared.ErrMissingArgument)
	}

	engine, err := r.openEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	channel, err := engine.Store().Channels.GetByKey(channelKey)
	if err != nil {
		return err
	}

	videos, err := engine.Store().Videos.List(map[string]any{"channel_id": channel.ID})
	if err != nil {
		return err
	}

	files, err := formatter.WriteChannelExport(channel, videos, cmd.String("output"))
	if err != nil {
		return err
	}

	for _, file := range files {
		r.logger.Info("wrote export", "file", file)
	}
	return nil
}

// Setup creates the config file when missing and initializes the database schema.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	engine, err := r.openEngine(cmd)
	if err != nil {
		return err
	}
	defer engine.Close()

	r.logger.Info("setup complete", "error_log", engine.ErrorLog().Path())
	return nil
}
