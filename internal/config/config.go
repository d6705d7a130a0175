// Package config loads cadence settings from an optional TOML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Display  DisplayConfig  `toml:"display"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level      string `toml:"level"` // debug | info | warn | error
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Verbose    bool   `toml:"verbose"`
}

type DisplayConfig struct {
	HeatWindowDays  int  `toml:"heat_window_days"`
	TrendWindowDays int  `toml:"trend_window_days"`
	Color           bool `toml:"color"`
}

// Dir returns the cadence home directory under home.
func Dir(home string) string {
	return filepath.Join(home, ".cadence")
}

// Default returns the built-in configuration rooted at home.
func Default(home string) Config {
	dir := Dir(home)
	return Config{
		Database: DatabaseConfig{
			Path: filepath.Join(dir, "cadence.db"),
		},
		Log: LogConfig{
			Level:      "warn",
			File:       filepath.Join(dir, "logs", "cadence.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Display: DisplayConfig{
			HeatWindowDays:  30,
			TrendWindowDays: 7,
			Color:           true,
		},
	}
}

// Load decodes the TOML file at path over defaults. A missing or empty file
// yields the defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}

	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 {
		return errors.New("log.max_size_mb must be >= 0")
	}
	if c.Log.MaxBackups < 0 {
		return errors.New("log.max_backups must be >= 0")
	}
	if c.Log.MaxAgeDays < 0 {
		return errors.New("log.max_age_days must be >= 0")
	}

	if c.Display.HeatWindowDays < 1 || c.Display.HeatWindowDays > 366 {
		return fmt.Errorf("display.heat_window_days must be between 1 and 366, got %d", c.Display.HeatWindowDays)
	}
	if c.Display.TrendWindowDays < 1 || c.Display.TrendWindowDays > 366 {
		return fmt.Errorf("display.trend_window_days must be between 1 and 366, got %d", c.Display.TrendWindowDays)
	}
	return nil
}

// ApplyEnv overrides values from CADENCE_* environment variables. Unparsable
// values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CADENCE_DB"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("CADENCE_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CADENCE_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("CADENCE_VERBOSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Verbose = b
		}
	}
}

// Resolve builds the effective configuration: defaults, then the file named
// by CADENCE_CONFIG (or config.toml in the cadence home), then environment
// overrides.
func Resolve(home string) (Config, error) {
	defaults := Default(home)
	path := os.Getenv("CADENCE_CONFIG")
	if path == "" {
		path = filepath.Join(Dir(home), "config.toml")
	}
	cfg, err := Load(path, defaults)
	if err != nil {
		return Config{}, fmt.Errorf("loading %s: %w", path, err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
