package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files", "settings.json")

	s, warnings := LoadSettings(path)
	assert.Equal(t, DefaultSettings(), s)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "using default settings")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, map[string]interface{}{
		"last_db":      "database.db",
		"table_format": "simple_outline",
		"clear_input":  false,
	}, onDisk)
}

func TestLoadSettings_CorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, warnings := LoadSettings(path)
	assert.Equal(t, DefaultSettings(), s)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0], "parse settings")

	reloaded, warnings := LoadSettings(path)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultSettings(), reloaded)
}

func TestLoadSettings_UnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"last_db": "shop.db", "table_format": "neon", "clear_input": true}`), 0o644))

	s, warnings := LoadSettings(path)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `unknown table format "neon"`)
	assert.Equal(t, &Settings{LastDB: "shop.db", TableFormat: "simple_outline", ClearInput: true}, s)
}

func TestLoadSettings_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"table_format": "psql"}`), 0o644))

	s, warnings := LoadSettings(path)
	assert.Empty(t, warnings)
	assert.Equal(t, &Settings{LastDB: "database.db", TableFormat: "psql"}, s)
}

func TestSaveLoadSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")
	want := &Settings{LastDB: "/data/shop.sqlite3", TableFormat: "github", ClearInput: true}

	require.NoError(t, SaveSettings(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"last_db\": \"/data/shop.sqlite3\"")

	got, warnings := LoadSettings(path)
	assert.Empty(t, warnings)
	assert.Equal(t, want, got)
}

func TestSaveSettings_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := SaveSettings(filepath.Join(blocker, "settings.json"), DefaultSettings())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create settings dir")
}
