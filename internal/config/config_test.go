package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/workoutdiary/internal/diary"
	"github.com/roach88/workoutdiary/internal/prefs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, 4, cfg.HistoryLimit)
	assert.Equal(t, prefs.Light, cfg.DefaultTheme)
	assert.Equal(t, diary.MigrationTable{"Arms": diary.Biceps}, cfg.CategoryMigrations)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysFile(t *testing.T) {
	path := writeConfig(t, `
database: /tmp/gym.db
history_limit: 6
default_theme: dark
category_migrations:
  Arms: Triceps
  Upper: Chest
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gym.db", cfg.Database)
	assert.Equal(t, 6, cfg.HistoryLimit)
	assert.Equal(t, prefs.Dark, cfg.DefaultTheme)
	assert.Equal(t, diary.MigrationTable{"Arms": diary.Triceps, "Upper": diary.Chest}, cfg.CategoryMigrations)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "history_limit: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.HistoryLimit)
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, diary.DefaultMigrations(), cfg.CategoryMigrations)
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyMigrationTableDisablesMigration(t *testing.T) {
	cfg, err := Load(writeConfig(t, "category_migrations: {}\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.CategoryMigrations)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeConfig(t, "histroy_limit: 3\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = Load(writeConfig(t, "history_limit: [1\n"))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.ApplyEnv(envMap(nil))
	assert.Equal(t, DefaultDatabase, cfg.Database)

	cfg.ApplyEnv(envMap(map[string]string{EnvDatabase: "/data/diary.db"}))
	assert.Equal(t, "/data/diary.db", cfg.Database)
}

func TestPath(t *testing.T) {
	env := envMap(map[string]string{EnvConfig: "/etc/diary.yaml"})
	assert.Equal(t, "flag.yaml", Path("flag.yaml", env))
	assert.Equal(t, "/etc/diary.yaml", Path("", env))
	assert.Equal(t, "", Path("", envMap(nil)))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"empty database", func(c *Config) { c.Database = "" }, "database path is required"},
		{"zero history", func(c *Config) { c.HistoryLimit = 0 }, "history_limit must be positive"},
		{"negative history", func(c *Config) { c.HistoryLimit = -1 }, "history_limit must be positive"},
		{"unknown theme", func(c *Config) { c.DefaultTheme = "solarized" }, "unknown theme"},
		{"non-canonical target", func(c *Config) {
			c.CategoryMigrations = diary.MigrationTable{"Arms": "Arms2"}
		}, "category_migrations"},
		{"All as target", func(c *Config) {
			c.CategoryMigrations = diary.MigrationTable{"Arms": diary.All}
		}, "not a canonical category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
