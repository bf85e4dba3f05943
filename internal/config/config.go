package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultVersion = 1

	// Default values for output configuration.
	FormatText       = "text"
	FormatJSON       = "json"
	DefaultFormat    = FormatText
	DefaultPrecision = -1

	// Default values for the interactive session and script watcher.
	DefaultHistorySize = 100
	DefaultDebounce    = 100 * time.Millisecond
)

// Config defines user configuration stored in config.json.
type Config struct {
	Version int           `json:"version"`
	Output  *OutputConfig `json:"output,omitempty"`
	Repl    *ReplConfig   `json:"repl,omitempty"`
	Watch   *WatchConfig  `json:"watch,omitempty"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	// Format is "text" or "json" (default "text").
	Format *string `json:"format,omitempty"`

	// Precision is the number of decimals, or -1 for the shortest exact
	// representation (default -1).
	Precision *int `json:"precision,omitempty"`
}

// GetFormat returns the output format (default "text").
func (c *OutputConfig) GetFormat() string {
	if c == nil || c.Format == nil {
		return DefaultFormat
	}
	return *c.Format
}

// GetPrecision returns the output precision (default -1).
func (c *OutputConfig) GetPrecision() int {
	if c == nil || c.Precision == nil {
		return DefaultPrecision
	}
	return *c.Precision
}

// Validate checks that output values are supported.
func (c *OutputConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.Format != nil && *c.Format != FormatText && *c.Format != FormatJSON {
		return fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatJSON, *c.Format)
	}
	if c.Precision != nil && (*c.Precision < -1 || *c.Precision > 17) {
		return fmt.Errorf("precision must be between -1 and 17, got %d", *c.Precision)
	}
	return nil
}

// ReplConfig holds interactive session settings.
type ReplConfig struct {
	// HistorySize is how many results stay on screen (default 100).
	HistorySize *int `json:"history_size,omitempty"`
}

// GetHistorySize returns the history size (default 100).
func (c *ReplConfig) GetHistorySize() int {
	if c == nil || c.HistorySize == nil {
		return DefaultHistorySize
	}
	return *c.HistorySize
}

func (c *ReplConfig) Validate() error {
	if c == nil || c.HistorySize == nil {
		return nil
	}
	if *c.HistorySize < 1 || *c.HistorySize > 10000 {
		return fmt.Errorf("history_size must be between 1 and 10000, got %d", *c.HistorySize)
	}
	return nil
}

// WatchConfig holds script watcher settings.
type WatchConfig struct {
	// Debounce is the quiet period before a changed script re-runs, as a
	// duration string (default "100ms").
	Debounce *string `json:"debounce,omitempty"`
}

// GetDebounce returns the debounce delay (default 100ms).
func (c *WatchConfig) GetDebounce() time.Duration {
	if c == nil || c.Debounce == nil {
		return DefaultDebounce
	}
	d, err := time.ParseDuration(*c.Debounce)
	if err != nil {
		return DefaultDebounce
	}
	return d
}

func (c *WatchConfig) Validate() error {
	if c == nil || c.Debounce == nil {
		return nil
	}
	d, err := time.ParseDuration(*c.Debounce)
	if err != nil {
		return fmt.Errorf("invalid debounce: %w", err)
	}
	if d < 10*time.Millisecond {
		return fmt.Errorf("debounce must be at least 10ms, got %v", d)
	}
	if d > 10*time.Second {
		return fmt.Errorf("debounce must be at most 10s, got %v", d)
	}
	return nil
}

// Default returns the default config.
func Default() Config {
	return Config{Version: DefaultVersion}
}

// DefaultPath returns <user config dir>/calc/config.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "calc", "config.json"), nil
}

// Load reads config from disk and applies defaults for zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config not found: %w", err)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

// LoadOrDefault reads config from disk, returning defaults if the file
// doesn't exist.
func LoadOrDefault(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Version == 0 {
		cfg.Version = DefaultVersion
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes a config to disk, creating the parent directory.
func Save(path string, cfg Config) error {
	if cfg.Version == 0 {
		cfg.Version = DefaultVersion
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate ensures config values are within supported ranges.
func (c Config) Validate() error {
	if c.Version != DefaultVersion {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("invalid output config: %w", err)
	}
	if err := c.Repl.Validate(); err != nil {
		return fmt.Errorf("invalid repl config: %w", err)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("invalid watch config: %w", err)
	}
	return nil
}
