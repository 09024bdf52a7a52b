package domain

import "time"

// BlobPlaceholder replaces binary column values before rendering.
const BlobPlaceholder = "<BLOB>"

// ResultSet is the materialized output of one statement.
type ResultSet struct {
	// Columns holds the non-empty column labels reported by the driver.
	Columns []string        `json:"columns" yaml:"columns"`
	Rows    [][]interface{} `json:"rows" yaml:"rows"`
}

// Labeled reports whether Columns can be used as a table header.
func (r *ResultSet) Labeled() bool {
	return len(r.Rows) > 0 && len(r.Columns) > 0 && len(r.Columns) == len(r.Rows[0])
}

// StatementResult is the outcome of one statement in a batch: either a
// ResultSet or an error message, never both.
type StatementResult struct {
	Statement string        `json:"statement" yaml:"statement"`
	Result    *ResultSet    `json:"result,omitempty" yaml:"result,omitempty"`
	Err       *string       `json:"error,omitempty" yaml:"error,omitempty"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// OK reports whether the statement executed without error.
func (r *StatementResult) OK() bool { return r.Err == nil }
