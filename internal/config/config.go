// Package config resolves runtime settings: defaults, then an optional YAML
// file, then environment overrides. Command-line flags are applied last by
// the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/nav"
	"github.com/roach88/workoutdiary/internal/prefs"
)

// Environment variables.
const (
	EnvDatabase = "WORKOUT_DIARY_DB"
	EnvConfig   = "WORKOUT_DIARY_CONFIG"
)

// DefaultDatabase is the SQLite file used when nothing else is configured.
const DefaultDatabase = "workout-diary.db"

// Config holds resolved settings.
type Config struct {
	Database           string               `yaml:"database"`
	HistoryLimit       int                  `yaml:"history_limit"`
	DefaultTheme       prefs.Theme          `yaml:"default_theme"`
	CategoryMigrations diary.MigrationTable `yaml:"category_migrations"`
}

// fileConfig distinguishes absent keys from zero values.
type fileConfig struct {
	Database           *string               `yaml:"database"`
	HistoryLimit       *int                  `yaml:"history_limit"`
	DefaultTheme       *prefs.Theme          `yaml:"default_theme"`
	CategoryMigrations *diary.MigrationTable `yaml:"category_migrations"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Database:           DefaultDatabase,
		HistoryLimit:       nav.DefaultHistoryLimit,
		DefaultTheme:       prefs.Light,
		CategoryMigrations: diary.DefaultMigrations(),
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path skips the file. Unknown keys are rejected.
// A category_migrations key replaces the default table entirely.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if fc.Database != nil {
		cfg.Database = *fc.Database
	}
	if fc.HistoryLimit != nil {
		cfg.HistoryLimit = *fc.HistoryLimit
	}
	if fc.DefaultTheme != nil {
		cfg.DefaultTheme = *fc.DefaultTheme
	}
	if fc.CategoryMigrations != nil {
		cfg.CategoryMigrations = *fc.CategoryMigrations
		if cfg.CategoryMigrations == nil {
			cfg.CategoryMigrations = diary.MigrationTable{}
		}
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Database = envOr(getenv, EnvDatabase, c.Database)
}

// Validate checks the resolved settings.
func (c *Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit)
	}
	if _, ok := prefs.ParseTheme(string(c.DefaultTheme)); !ok {
		return fmt.Errorf("default_theme: unknown theme %q", c.DefaultTheme)
	}
	if err := c.CategoryMigrations.Validate(); err != nil {
		return fmt.Errorf("category_migrations: %w", err)
	}
	return nil
}

// Path returns the config file to load: flagValue if set, else the
// WORKOUT_DIARY_CONFIG environment variable, else "" for none.
func Path(flagValue string, getenv func(string) string) string {
	if flagValue != "" {
		return flagValue
	}
	return envOr(getenv, EnvConfig, "")
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
