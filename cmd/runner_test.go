package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytdb/internal/models"
	"github.com/desertthunder/ytdb/internal/services"
	"github.com/desertthunder/ytdb/internal/shared"
	mocks "github.com/desertthunder/ytdb/internal/testing"
	"github.com/urfave/cli/v3"
)

// setupTestRunner builds a runner over a mock provider with the data directory
// sandboxed, so the default database and error log land in a temp dir.
func setupTestRunner(t *testing.T) (*Runner, *mocks.MockProvider, *bytes.Buffer) {
	t.Helper()
	t.Setenv("YTDB_DATA_DIR", t.TempDir())

	provider := mocks.NewMockProvider()
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Provider: provider,
		Logger:   shared.NewLogger(io.Discard),
		Output:   output,
	})
	return runner, provider, output
}

func runApp(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name:     "ytdb",
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"ytdb"}, args...))
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(RunnerOpts{})

	if runner.config == nil || runner.logger == nil {
		t.Error("expected defaults filled in")
	}
	if runner.output != os.Stdout {
		t.Error("expected stdout as default output")
	}
	if _, ok := runner.provider.(*services.CatalogService); !ok {
		t.Errorf("expected catalog provider by default, got %T", runner.provider)
	}
}

func TestRegister(t *testing.T) {
	runner, _, _ := setupTestRunner(t)

	commands := runner.register()
	want := []string{"import", "get", "errors", "export", "browse", "setup"}
	if len(commands) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(commands))
	}
	for i, name := range want {
		if commands[i].Name != name {
			t.Errorf("expected command %q at %d, got %q", name, i, commands[i].Name)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{Output: output, Logger: shared.NewLogger(io.Discard)})

	if err := runner.writeJSON(map[string]int{"found": 2}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(output.String()); got != `{"found":2}` {
		t.Errorf("unexpected compact output %q", got)
	}

	output.Reset()
	if err := runner.writeJSON(map[string]int{"found": 2}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), "\n  \"found\": 2") {
		t.Errorf("unexpected pretty output %q", output.String())
	}

	failing := NewRunner(RunnerOpts{Output: &mocks.FWriter{}, Logger: shared.NewLogger(io.Discard)})
	if err := failing.writeJSON(map[string]int{}, false); err == nil {
		t.Error("expected error from a failing writer")
	}
}

// loadConfigVia runs loadConfig through a parsed command so the --config flag
// carries a real value.
func loadConfigVia(t *testing.T, runner *Runner, configPath string) *shared.Config {
	t.Helper()

	var got *shared.Config
	app := &cli.Command{
		Name:  "t",
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			got = runner.loadConfig(cmd)
			return nil
		},
	}
	if err := app.Run(context.Background(), []string{"t", "--config", configPath}); err != nil {
		t.Fatal(err)
	}
	return got
}

func TestLoadConfig(t *testing.T) {
	runner, _, _ := setupTestRunner(t)

	t.Run("MissingFileFallsBack", func(t *testing.T) {
		got := loadConfigVia(t, runner, filepath.Join(t.TempDir(), "nope.toml"))
		if got != runner.config {
			t.Error("expected fallback to the base config")
		}
	})

	t.Run("LoadsFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[database]\npath = \"custom.sqlite\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if got := loadConfigVia(t, runner, path); got.Database.Path != "custom.sqlite" {
			t.Errorf("expected loaded config, got %+v", got)
		}
	})
}

func TestImportChannelCommand(t *testing.T) {
	runner, provider, output := setupTestRunner(t)

	provider.Add(models.KindChannel, "UC1", models.Attrs{"id": "UC1", "name": "My Channel"})
	provider.Listings["UC1"] = []services.ItemPayload{
		{ItemKind: "video", Attrs: models.Attrs{"videoId": "v1", "name": "First"}},
		{ItemKind: "video", Attrs: models.Attrs{"name": "No key"}},
	}

	if err := runApp(t, runner, "import", "--json", "UC1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := output.String()
	if !strings.Contains(got, `"found": 1`) || !strings.Contains(got, `"failed": 1`) {
		t.Errorf("unexpected metrics output %q", got)
	}
}

func TestImportChannelRequiresArgument(t *testing.T) {
	runner, _, _ := setupTestRunner(t)

	err := runApp(t, runner, "import")
	if err == nil || !strings.Contains(err.Error(), "channel key") {
		t.Errorf("expected missing argument error, got %v", err)
	}
}

func TestGetCommand(t *testing.T) {
	runner, provider, output := setupTestRunner(t)
	provider.Add(models.KindChannel, "UC1", models.Attrs{"id": "UC1", "name": "My Channel"})

	if err := runApp(t, runner, "get", "channel", "UC1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), "My Channel") {
		t.Errorf("unexpected output %q", output.String())
	}
}

func TestGetCommandMiss(t *testing.T) {
	runner, _, _ := setupTestRunner(t)

	err := runApp(t, runner, "get", "video", "v-missing")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestErrorsCommand(t *testing.T) {
	runner, _, output := setupTestRunner(t)

	// A miss leaves a record behind for the errors command to report.
	_ = runApp(t, runner, "get", "video", "v-missing")
	output.Reset()

	if err := runApp(t, runner, "errors", "--json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(output.String(), "v-missing") {
		t.Errorf("expected the recorded failure in output, got %q", output.String())
	}
}

func TestSetupCommand(t *testing.T) {
	runner, _, _ := setupTestRunner(t)
	configPath := filepath.Join(t.TempDir(), "config.toml")

	if err := runApp(t, runner, "setup", "--config", configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mocks.AssertFileExists(t, configPath)

	dataDir := os.Getenv("YTDB_DATA_DIR")
	mocks.AssertFileExists(t, filepath.Join(dataDir, "ytdb.sqlite"))
}
