// ABOUTME: Configuration for the notebook CLI and server.
// ABOUTME: Handles JSON settings under the XDG config dir with flag overrides applied by callers.

package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds notebook settings.
type Config struct {
	// DBPath is the SQLite database file (default: $XDG_DATA_HOME/notebook/notebook.db)
	DBPath string `json:"db_path,omitempty"`

	// Addr is the HTTP listen address for serve (default: 127.0.0.1:8080)
	Addr string `json:"addr,omitempty"`

	// StaticDir, when set, is served at / next to the API
	StaticDir string `json:"static_dir,omitempty"`

	// LogLevel is one of debug, info, warn, error (default: info)
	LogLevel string `json:"log_level,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults. An empty DBPath
// means the store's default location.
func DefaultConfig() *Config {
	return &Config{
		Addr:     "127.0.0.1:8080",
		LogLevel: "info",
	}
}

// Dir returns the configuration directory path.
func Dir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "notebook")
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads configuration from path, returning defaults if the file is missing.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
