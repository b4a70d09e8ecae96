package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	defaultDatabaseName = "ytdb.sqlite"
	defaultErrorLogName = "error_log.json"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Provider ProviderConfig `toml:"provider"`
	Storage  StorageConfig  `toml:"storage"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ProviderConfig contains remote catalog provider settings.
type ProviderConfig struct {
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	AccessToken string  `toml:"access_token"`
	RateLimit   float64 `toml:"rate_limit"` // requests per second; 0 disables throttling
}

// StorageConfig contains file storage settings for the error log.
type StorageConfig struct {
	ErrorLog string `toml:"error_log"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DataDir returns the directory holding the primary database and error log.
//
// YTDB_DATA_DIR overrides the default of ~/.local/share/ytdb. The directory is
// created if it does not exist.
func DataDir() (string, error) {
	dir := os.Getenv("YTDB_DATA_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = filepath.Join(home, ".local", "share", "ytdb")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dir, nil
}

// ResolveDatabasePath expands a database path override into a full file path.
//
// An empty path means the default file in the data directory. A path naming an
// existing directory gets the default file name appended. A bare name with no
// path separators is placed in the data directory with a .sqlite extension.
// Everything else (including ":memory:") is used as given.
func ResolveDatabasePath(path string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}

	if path == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, defaultDatabaseName), nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultDatabaseName), nil
	}

	if !strings.ContainsAny(path, `/\`) {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		if !strings.HasSuffix(path, ".sqlite") {
			path += ".sqlite"
		}
		return filepath.Join(dir, path), nil
	}

	return path, nil
}

// ResolveErrorLogPath expands an error log path override the same way as
// [ResolveDatabasePath]: empty means the default file in the data directory,
// a directory gets the default name appended, and full paths pass through.
func ResolveErrorLogPath(path string) (string, error) {
	if path == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, defaultErrorLogName), nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, defaultErrorLogName), nil
	}

	return path, nil
}
