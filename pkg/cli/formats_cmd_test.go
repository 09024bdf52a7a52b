package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormats_MarksDefaultAndCurrent(t *testing.T) {
	isolateEnv(t)

	output, err := execute(t, "", "formats")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	assert.Len(t, lines, 22)
	assert.Contains(t, lines, "* simple_outline (default)")
	assert.Contains(t, lines, "  html")

	output, err = execute(t, "", "formats", "-f", "github")
	require.NoError(t, err)
	assert.Contains(t, output, "* github\n")
	assert.Contains(t, output, "  simple_outline (default)\n")
}

func TestFormats_JSON(t *testing.T) {
	isolateEnv(t)

	output, err := execute(t, "", "-o", "json", "formats")
	require.NoError(t, err)

	var entries []FormatEntry
	require.NoError(t, json.Unmarshal([]byte(output), &entries))
	require.Len(t, entries, 22)
	current := 0
	for _, e := range entries {
		if e.Current {
			current++
			assert.Equal(t, "simple_outline", e.Name)
			assert.True(t, e.Default)
		}
	}
	assert.Equal(t, 1, current)
}
