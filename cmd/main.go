package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytdb/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	if os.Getenv("YTDB_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
		Output: os.Stdout,
	})

	app := &cli.Command{
		Name:     "ytdb",
		Usage:    "Mirror a remote content catalog into a local SQLite database",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Fatal(err)
		}
	}
}
