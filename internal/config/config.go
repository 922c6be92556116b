// Package config loads and saves the cal configuration.
//
// Values are layered: built-in defaults, then the YAML file, then the
// environment (a .env file in the working directory is read first). The
// result is normalized and checked against an embedded CUE schema.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/roach88/calendar/internal/calendar"
)

// Environment variables that override file values.
const (
	EnvDatabase     = "CAL_DATABASE"
	EnvDefaultColor = "CAL_DEFAULT_COLOR"
	EnvExportDir    = "CAL_EXPORT_DIR"
	EnvLogLevel     = "CAL_LOG_LEVEL"
	EnvTimezone     = "CAL_TIMEZONE"
)

// Default values.
const (
	DefaultDatabase  = "calendar.db"
	DefaultExportDir = "."
	DefaultLogLevel  = "info"
	DefaultTimezone  = "Local"
)

// Config is the top-level configuration.
type Config struct {
	// Database is the SQLite file holding the event snapshot.
	Database string `yaml:"database" json:"database"`

	// DefaultColor is applied to events submitted without a color.
	DefaultColor string `yaml:"default_color" json:"default_color"`

	// ExportDir is where export writes files unless --dir is given.
	ExportDir string `yaml:"export_dir" json:"export_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Timezone is the IANA zone used to place events on the time line
	// for iCalendar export, or "Local".
	Timezone string `yaml:"timezone" json:"timezone"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Database:     DefaultDatabase,
		DefaultColor: calendar.DefaultColor,
		ExportDir:    DefaultExportDir,
		LogLevel:     DefaultLogLevel,
		Timezone:     DefaultTimezone,
	}
}

// DefaultPath returns the config file location under the user's config
// directory, or "cal.yaml" when that directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cal.yaml"
	}
	return filepath.Join(dir, "cal", "config.yaml")
}

// Normalize trims values and fills empty ones with defaults.
func (c *Config) Normalize() {
	c.Database = strings.TrimSpace(c.Database)
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	c.DefaultColor = strings.TrimSpace(c.DefaultColor)
	if c.DefaultColor == "" {
		c.DefaultColor = calendar.DefaultColor
	}
	c.ExportDir = strings.TrimSpace(c.ExportDir)
	if c.ExportDir == "" {
		c.ExportDir = DefaultExportDir
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Timezone = strings.TrimSpace(c.Timezone)
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
}

// Load reads the configuration at path and applies environment overrides.
//
// A missing file (or an empty path) yields the defaults. Unknown keys in
// the file are an error. envFiles are dotenv files to read before the
// environment is consulted; with none, ".env" is tried. Missing dotenv
// files are ignored, and variables already set in the process win.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := decodeYAML(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	cfg.applyEnv()

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Database = getEnvOrDefault(EnvDatabase, c.Database)
	c.DefaultColor = getEnvOrDefault(EnvDefaultColor, c.DefaultColor)
	c.ExportDir = getEnvOrDefault(EnvExportDir, c.ExportDir)
	c.LogLevel = getEnvOrDefault(EnvLogLevel, c.LogLevel)
	c.Timezone = getEnvOrDefault(EnvTimezone, c.Timezone)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// Location resolves Timezone. Call Validate first; an unknown zone falls
// back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Save writes cfg to path as YAML.
//
//   - The parent directory is created with 0700.
//   - The file is written to a temp file in the same directory and renamed
//     into place, ending with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
