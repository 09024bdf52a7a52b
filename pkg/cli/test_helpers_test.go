package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// captureStdout redirects os.Stdout to a pipe and returns a function
// that restores stdout and returns the captured output.
// Uses a goroutine to read concurrently, avoiding pipe buffer deadlocks.
func captureStdout(t *testing.T) func() string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	// Read concurrently to avoid pipe buffer deadlock on large outputs
	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = buf.ReadFrom(r)
		close(done)
	}()

	return func() string {
		_ = w.Close()
		<-done
		os.Stdout = old
		return buf.String()
	}
}

// isolateEnv points the settings file into a temp dir, clears SQLPAD_*
// variables, disables colour and treats stdin as piped. It returns the
// settings path.
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"SQLPAD_DB", "SQLPAD_FORMAT", "SQLPAD_LOG_LEVEL", "SQLPAD_LOG_FORMAT", "SQLPAD_THEME"} {
		t.Setenv(key, "")
	}
	settingsPath := filepath.Join(t.TempDir(), "files", "settings.json")
	t.Setenv("SQLPAD_SETTINGS", settingsPath)

	prevColor := color.NoColor
	color.NoColor = true
	prevStdin := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		color.NoColor = prevColor
		stdinIsTerminal = prevStdin
	})
	return settingsPath
}

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))

	restore := captureStdout(t)
	err := rootCmd.Execute()
	return restore(), err
}
