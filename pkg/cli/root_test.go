package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlpad/internal/service/query"
)

func TestExitStatus(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name    string
		err     error
		want    int
		wantMsg string
	}{
		{name: "success", err: nil, want: 0},
		{name: "exit sentinel", err: query.ErrExitRequested, want: 0},
		{name: "wrapped exit sentinel", err: fmt.Errorf("shell: %w", query.ErrExitRequested), want: 0},
		{name: "failure", err: errors.New("boom"), want: 1, wantMsg: "Error: boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Equal(t, tt.want, exitStatus(newRootCmd(), tt.err, &stderr))
			assert.Equal(t, tt.wantMsg, stderr.String())
		})
	}
}

func TestExitStatus_JSON(t *testing.T) {
	isolateEnv(t)

	rootCmd := newRootCmd()
	require.NoError(t, rootCmd.PersistentFlags().Set("output", "json"))

	var stderr bytes.Buffer
	restore := captureStdout(t)
	status := exitStatus(rootCmd, errors.New("boom"), &stderr)
	output := restore()

	assert.Equal(t, 1, status)
	assert.Empty(t, stderr.String())
	var obj map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &obj))
	assert.Equal(t, "boom", obj["error"])
}

func TestVersion(t *testing.T) {
	settingsPath := isolateEnv(t)

	output, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "sqlpad version dev (commit: none)\n", output)

	_, statErr := os.Stat(settingsPath)
	assert.True(t, os.IsNotExist(statErr), "version must not touch the settings file")
}

func TestVersion_JSON(t *testing.T) {
	isolateEnv(t)

	output, err := execute(t, "", "-o", "json", "version")
	require.NoError(t, err)
	var obj map[string]string
	require.NoError(t, json.Unmarshal([]byte(output), &obj))
	assert.Equal(t, "dev", obj["version"])
}

func TestUnsupportedOutputFormat(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "", "-o", "xml", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "xml"`)
}

func TestCompletion(t *testing.T) {
	isolateEnv(t)

	output, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, output, "sqlpad")

	_, err = execute(t, "", "completion", "tcsh")
	require.Error(t, err)
}
