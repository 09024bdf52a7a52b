package db

import (
	"context"
	"path/filepath"
	"testing"
)

// TempDatabase returns the path of a fresh database file in t.TempDir(),
// after running the given setup statements against it.
func TempDatabase(t *testing.T, setup ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	defer func() { _ = conn.Close() }()

	for _, stmt := range setup {
		if _, err := conn.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	return path
}
