// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func databaseFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "database",
		Aliases: []string{"d"},
		Usage:   "Database path override (directory, bare name, or full path)",
	}
}

// importCommand imports a channel's full listing
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "import",
		Aliases: []string{"sync"},
		Usage:   "Import a channel and all of its videos and playlists",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "channel",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Show a live progress bar",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output metrics as JSON",
			},
		},
		Action: r.ImportChannel,
	}
}

// getCommand ensures a single item exists locally
func getCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Look up an item locally, importing it from the provider on a miss",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "kind",
			},
			&cli.StringArg{
				Name: "key",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.GetItem,
	}
}

// errorsCommand inspects the durable error log
func errorsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "errors",
		Usage: "List recorded import failures",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "csv",
				Usage: "Output CSV",
			},
		},
		Action: r.ListErrors,
	}
}

// exportCommand writes a channel's imported videos to CSV and Markdown
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a channel's imported videos to CSV and Markdown files",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "channel",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Base path for output files",
			},
		},
		Action: r.ExportChannel,
	}
}

// browseCommand opens the catalog browser TUI
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse the imported catalog interactively",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
		},
		Action: r.Browse,
	}
}

// setupCommand initializes configuration and the database schema
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a config file and initialize the database schema",
		Flags: []cli.Flag{
			configFlag(),
			databaseFlag(),
		},
		Action: r.Setup,
	}
}
