// Package notebook reads and writes .nbdb notebook files, plain UTF-8 text
// holding SQL, and tracks edits to an open notebook.
package notebook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Ext is the file extension of notebook files.
const Ext = ".nbdb"

var (
	// ErrWrongFormat is returned for paths without the notebook extension.
	ErrWrongFormat = errors.New("different file format")
	// ErrNoPath is returned when saving a notebook that was never named.
	ErrNoPath = errors.New("notebook has no file path")
)

// CheckPath rejects paths that do not end in the notebook extension.
func CheckPath(path string) error {
	if filepath.Ext(path) != Ext {
		return fmt.Errorf("%s: %w", path, ErrWrongFormat)
	}
	return nil
}

// Read returns the full contents of the notebook at path, unmodified.
func Read(path string) (string, error) {
	if err := CheckPath(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is chosen by the user
	if err != nil {
		return "", fmt.Errorf("read notebook: %w", err)
	}
	return string(data), nil
}

// Write replaces the notebook at path with text.
func Write(path, text string) error {
	if err := CheckPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // notebooks are user documents
		return fmt.Errorf("write notebook: %w", err)
	}
	return nil
}
