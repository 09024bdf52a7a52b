// Package query executes batches of SQL statements against a database file
// and renders each statement's outcome as text.
package query

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sqlpad/internal/db"
	"sqlpad/internal/domain"
	"sqlpad/internal/tableformat"
)

// Opener opens the database file a batch runs against.
type Opener func(ctx context.Context, path string) (*sql.DB, error)

// Service runs statement batches. It holds no state between calls.
type Service struct {
	open   Opener
	logger *slog.Logger
}

// NewService creates a Service that opens databases with db.Open.
func NewService(logger *slog.Logger) *Service {
	return NewServiceWithOpener(db.Open, logger)
}

// NewServiceWithOpener creates a Service with a custom database opener.
func NewServiceWithOpener(open Opener, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{open: open, logger: logger}
}

// ExecuteAndFormat runs every statement in text against the database at
// databasePath and returns one rendered section per statement, in input
// order. Statement failures are rendered inline and never abort the batch.
//
// Errors are returned only for an unknown table format, a database that
// cannot be opened, and ErrExitRequested.
func (s *Service) ExecuteAndFormat(ctx context.Context, text, databasePath, tableFormat string) (string, error) {
	f, err := tableformat.Parse(tableFormat)
	if err != nil {
		return "", err
	}

	results, err := s.Execute(ctx, text, databasePath)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return EmptyBatchOutput, nil
	}

	var b strings.Builder
	for i := range results {
		b.WriteString(FormatResult(&results[i], f))
	}
	return b.String(), nil
}

// Execute runs every statement in text on one connection and returns the
// per-statement results. An empty batch returns no results without opening
// the database.
func (s *Service) Execute(ctx context.Context, text, databasePath string) ([]domain.StatementResult, error) {
	batch := SplitBatch(text)
	if len(batch) == 0 {
		return nil, nil
	}
	if RequestsExit(batch) {
		return nil, ErrExitRequested
	}

	logger := s.logger.With("run_id", uuid.NewString())

	pool, err := s.open(ctx, databasePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = pool.Close() }()

	// One pinned connection keeps connection-scoped state (temp tables,
	// pragmas, a user-issued BEGIN) alive across the batch.
	conn, err := pool.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	results := make([]domain.StatementResult, 0, len(batch))
	failed := 0
	for _, stmt := range batch {
		r := runStatement(ctx, conn, stmt)
		if r.OK() {
			logger.Debug("statement executed", "statement", stmt, "rows", len(r.Result.Rows), "duration", r.Duration)
		} else {
			failed++
			logger.Debug("statement failed", "statement", stmt, "error", *r.Err, "duration", r.Duration)
		}
		results = append(results, r)
	}

	logger.Info("batch executed", "database", databasePath, "statements", len(results), "failed", failed)
	return results, nil
}

func runStatement(ctx context.Context, conn *sql.Conn, stmt string) domain.StatementResult {
	start := time.Now()
	rs, err := fetchAll(ctx, conn, stmt)
	r := domain.StatementResult{Statement: stmt, Duration: time.Since(start)}
	if err != nil {
		msg := err.Error()
		r.Err = &msg
		return r
	}
	r.Result = rs
	return r
}

// fetchAll executes stmt and materializes its rows, replacing binary values
// with the blob placeholder. Statements without columns yield an empty set.
func fetchAll(ctx context.Context, conn *sql.Conn, stmt string) (*domain.ResultSet, error) {
	rows, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		// Statements without a result set are stepped through Exec. Iterating
		// the rows of a comment-only statement never terminates.
		_ = rows.Close()
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return nil, err
		}
		return &domain.ResultSet{Columns: []string{}}, nil
	}

	var data [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if _, ok := v.([]byte); ok {
				values[i] = domain.BlobPlaceholder
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.ResultSet{Columns: nonEmpty(cols), Rows: data}, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
