// Package config handles the settings file and process configuration.
package config

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds process-level configuration read from the environment.
type Config struct {
	SettingsPath string // path of the JSON settings file (default files/settings.json)
	LogLevel     string // debug, info, warn, error (default "warn")
	LogFormat    string // text or json (default "text")
	Theme        string // light, dark or auto (default "auto")

	// Warnings collects non-fatal warnings generated during loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

var (
	logFormats = []string{"text", "json"}
	themes     = []string{"light", "dark", "auto"}
)

// LoadFromEnv loads configuration from SQLPAD_* environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		SettingsPath: os.Getenv("SQLPAD_SETTINGS"),
		LogLevel:     strings.ToLower(strings.TrimSpace(os.Getenv("SQLPAD_LOG_LEVEL"))),
		LogFormat:    strings.ToLower(strings.TrimSpace(os.Getenv("SQLPAD_LOG_FORMAT"))),
		Theme:        strings.ToLower(strings.TrimSpace(os.Getenv("SQLPAD_THEME"))),
	}

	// Defaults
	if cfg.SettingsPath == "" {
		cfg.SettingsPath = DefaultSettingsPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.Theme == "" {
		cfg.Theme = "auto"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level %q: use debug, info, warn or error", c.LogLevel)
	}
	if !contains(logFormats, c.LogFormat) {
		return fmt.Errorf("unsupported log format %q: use 'text' or 'json'", c.LogFormat)
	}
	if !contains(themes, c.Theme) {
		return fmt.Errorf("unsupported theme %q: use light, dark or auto", c.Theme)
	}
	return nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds a logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("setenv %s: %w", key, err)
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
