package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sqlpad/internal/tableformat"
)

// DefaultSettingsPath is where settings live, relative to the working directory.
var DefaultSettingsPath = filepath.Join("files", "settings.json")

// Settings is the user state persisted between sessions.
type Settings struct {
	LastDB      string `json:"last_db" yaml:"last_db"`
	TableFormat string `json:"table_format" yaml:"table_format"`
	ClearInput  bool   `json:"clear_input" yaml:"clear_input"`
}

// DefaultSettings returns the settings used when none can be read.
func DefaultSettings() *Settings {
	return &Settings{
		LastDB:      "database.db",
		TableFormat: string(tableformat.Default),
		ClearInput:  false,
	}
}

// LoadSettings reads the settings file at path. It never fails: when the
// file is missing or unreadable the defaults are written to path and
// returned. Anything that was fixed up is reported as a warning.
func LoadSettings(path string) (*Settings, []string) {
	var warnings []string

	s, err := readSettings(path)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("using default settings: %v", err))
		s = DefaultSettings()
		if err := SaveSettings(path, s); err != nil {
			warnings = append(warnings, fmt.Sprintf("write default settings: %v", err))
		}
		return s, warnings
	}

	if !tableformat.Format(s.TableFormat).Valid() {
		warnings = append(warnings, fmt.Sprintf("unknown table format %q in settings, using %s", s.TableFormat, tableformat.Default))
		s.TableFormat = string(tableformat.Default)
	}
	return s, warnings
}

func readSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s := DefaultSettings()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// SaveSettings writes s to path, creating the parent directory.
func SaveSettings(path string, s *Settings) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // settings are not secret
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
