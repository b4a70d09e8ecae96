package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider.BaseURL == "" {
		t.Error("default config should set a provider base URL")
	}
	if config.Database.MaxOpenConns == 0 {
		t.Error("default config should set max open connections")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("ValidFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[database]
path = "catalog.sqlite"
max_open_conns = 2

[provider]
base_url = "http://localhost:9999"
api_key = "test-key"
rate_limit = 2.5

[storage]
error_log = "errors.json"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "catalog.sqlite" {
			t.Errorf("expected database path 'catalog.sqlite', got %q", config.Database.Path)
		}
		if config.Provider.BaseURL != "http://localhost:9999" {
			t.Errorf("expected base URL 'http://localhost:9999', got %q", config.Provider.BaseURL)
		}
		if config.Provider.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Provider.RateLimit)
		}
		if config.Storage.ErrorLog != "errors.json" {
			t.Errorf("expected error log 'errors.json', got %q", config.Storage.ErrorLog)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("InvalidTOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[[["), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}

	if _, err := LoadConfig(path); err != nil {
		t.Errorf("created config file should parse: %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config file already exists")
	}
}

func TestResolveDatabasePath(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("YTDB_DATA_DIR", dataDir)

	t.Run("Empty", func(t *testing.T) {
		path, err := ResolveDatabasePath("")
		if err != nil {
			t.Fatalf("failed to resolve path: %v", err)
		}
		if path != filepath.Join(dataDir, "ytdb.sqlite") {
			t.Errorf("expected default path in data dir, got %q", path)
		}
	})

	t.Run("Memory", func(t *testing.T) {
		path, err := ResolveDatabasePath(":memory:")
		if err != nil {
			t.Fatalf("failed to resolve path: %v", err)
		}
		if path != ":memory:" {
			t.Errorf("expected :memory: to pass through, got %q", path)
		}
	})

	t.Run("Directory", func(t *testing.T) {
		dir := t.TempDir()
		path, err := ResolveDatabasePath(dir)
		if err != nil {
			t.Fatalf("failed to resolve path: %v", err)
		}
		if path != filepath.Join(dir, "ytdb.sqlite") {
			t.Errorf("expected default file inside directory, got %q", path)
		}
	})

	t.Run("BareName", func(t *testing.T) {
		path, err := ResolveDatabasePath("archive")
		if err != nil {
			t.Fatalf("failed to resolve path: %v", err)
		}
		if path != filepath.Join(dataDir, "archive.sqlite") {
			t.Errorf("expected bare name in data dir with .sqlite, got %q", path)
		}
	})

	t.Run("FullPath", func(t *testing.T) {
		full := filepath.Join(t.TempDir(), "my.db")
		path, err := ResolveDatabasePath(full)
		if err != nil {
			t.Fatalf("failed to resolve path: %v", err)
		}
		if path != full {
			t.Errorf("expected full path to pass through, got %q", path)
		}
	})
}

func TestResolveErrorLogPath(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("YTDB_DATA_DIR", dataDir)

	path, err := ResolveErrorLogPath("")
	if err != nil {
		t.Fatalf("failed to resolve path: %v", err)
	}
	if path != filepath.Join(dataDir, "error_log.json") {
		t.Errorf("expected default error log in data dir, got %q", path)
	}

	dir := t.TempDir()
	path, err = ResolveErrorLogPath(dir)
	if err != nil {
		t.Fatalf("failed to resolve path: %v", err)
	}
	if !strings.HasSuffix(path, "error_log.json") {
		t.Errorf("expected default file name inside directory, got %q", path)
	}
}
