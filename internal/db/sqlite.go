// Package db opens SQLite database files for statement execution.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"sqlpad/internal/domain"
)

// DriverName is the database/sql driver used for every connection.
const DriverName = "sqlite3"

// Lock waits are bounded by the engine; a still-busy file surfaces as an
// ordinary statement error.
const defaultBusyTimeout = "5000" // 5 seconds

const pingTimeout = 5 * time.Second

// Open opens the SQLite file at path with a single-connection pool.
//
// Statements run outside any explicit transaction, so each one commits on
// its own. No journal mode or foreign key pragma is set; the file keeps
// whatever settings it already has. The file is created if it does not
// exist; an unreachable path fails here instead of on the first statement.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	dsn, err := BuildDSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	return db, nil
}

// BuildDSN constructs the driver DSN for a database file path.
func BuildDSN(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", domain.ErrValidation("database path is required")
	}
	params := url.Values{}
	params.Set("_busy_timeout", defaultBusyTimeout)
	return path + "?" + params.Encode(), nil
}
