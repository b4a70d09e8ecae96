package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytdb/internal/repositories"
	"github.com/desertthunder/ytdb/internal/services"
	"github.com/desertthunder/ytdb/internal/shared"
	"github.com/desertthunder/ytdb/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	provider services.Provider
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Provider services.Provider
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Provider == nil {
		opts.Provider = services.NewCatalogService(opts.Config.Provider)
	}

	return &Runner{
		config:   opts.Config,
		provider: opts.Provider,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		importCommand, getCommand, errorsCommand, exportCommand, browseCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reloads configuration from the --config flag when the file exists.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	configPath := cmd.String("config")
	if configPath == "" {
		return r.config
	}

	if _, err := os.Stat(configPath); err != nil {
		return r.config
	}

	config, err := shared.LoadConfig(configPath)
	if err != nil {
		r.logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		return r.config
	}
	return config
}

// openEngine opens the store and error log described by the configuration and
// wires them into a sync engine. The caller owns the returned engine's Close.
func (r *Runner) openEngine(cmd *cli.Command) (*tasks.Engine, error) {
	config := r.loadConfig(cmd)

	dbPath := cmd.String("database")
	if dbPath == "" {
		dbPath = config.Database.Path
	}
	dbPath, err := shared.ResolveDatabasePath(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logPath, err := shared.ResolveErrorLogPath(config.Storage.ErrorLog)
	if err != nil {
		db.Close()
		return nil, err
	}

	errlog, err := repositories.OpenErrorLog(logPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open error log: %w", err)
	}

	return tasks.NewEngine(repositories.NewStore(db), r.provider, errlog, r.logger), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	_, err = fmt.Fprintln(r.output, string(output))
	return err
}
