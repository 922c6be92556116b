package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/calendar/internal/calendar"
)

// clearEnv neutralizes CAL_* variables from the developer's shell.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDatabase, EnvDefaultColor, EnvExportDir, EnvLogLevel, EnvTimezone} {
		t.Setenv(key, "")
	}
}

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultDatabase, cfg.Database)
	assert.Equal(t, calendar.DefaultColor, cfg.DefaultColor)
	assert.Equal(t, DefaultExportDir, cfg.ExportDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Local", cfg.Timezone)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("", noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", `
database: /tmp/cal.db
default_color: "#10B981"
log_level: DEBUG
timezone: Europe/Berlin
`)

	cfg, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cal.db", cfg.Database)
	assert.Equal(t, "#10B981", cfg.DefaultColor)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, DefaultExportDir, cfg.ExportDir)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, "config.yaml", ""), noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "config.yaml", "databse: x.db\n"), noEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "databse")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "config.yaml", "database: file.db\nlog_level: warn\n")
	t.Setenv(EnvDatabase, "  env.db ")
	t.Setenv(EnvLogLevel, "error")

	cfg, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvExportDir)
	t.Cleanup(func() { os.Unsetenv(EnvExportDir) })

	envFile := writeFile(t, ".env", EnvExportDir+"=/srv/exports\n")

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "/srv/exports", cfg.ExportDir)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"bad color", func(c *Config) { c.DefaultColor = "blue" }, "default_color"},
		{"short color", func(c *Config) { c.DefaultColor = "#fff" }, "default_color"},
		{"bad level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"empty database", func(c *Config) { c.Database = "" }, "database"},
		{"unknown zone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %T: %v", err, err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Database = "events.db"
	cfg.Timezone = "UTC"
	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path, noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_Errors(t *testing.T) {
	assert.Error(t, Save("", DefaultConfig()))
	assert.Error(t, Save(filepath.Join(t.TempDir(), "c.yaml"), nil))
}
