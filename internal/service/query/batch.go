package query

import (
	"errors"
	"strings"
)

// ErrExitRequested is returned when a batch contains the exit sentinel.
// No statement of that batch has been executed; the host decides how to
// shut down.
var ErrExitRequested = errors.New("exit requested")

// EmptyBatchOutput is returned for input without any statement.
const EmptyBatchOutput = ">>>\n\n"

// exitSentinels are matched case-sensitively against whole statements.
var exitSentinels = map[string]bool{
	"exit":   true,
	"exit()": true,
}

// SplitBatch splits text on ';' into statements. Fragments that are blank
// are dropped and newlines are removed from the rest; no other whitespace
// is touched. Splitting is purely textual, so a ';' inside a string literal
// also ends a statement.
func SplitBatch(text string) []string {
	var batch []string
	for _, fragment := range strings.Split(text, ";") {
		if strings.TrimSpace(fragment) == "" {
			continue
		}
		batch = append(batch, strings.ReplaceAll(fragment, "\n", ""))
	}
	return batch
}

// RequestsExit reports whether any statement in batch is an exit sentinel.
func RequestsExit(batch []string) bool {
	for _, stmt := range batch {
		if exitSentinels[stmt] {
			return true
		}
	}
	return false
}
