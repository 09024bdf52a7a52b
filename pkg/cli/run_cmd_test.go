package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlpad/internal/config"
	"sqlpad/internal/db"
	"sqlpad/internal/domain"
	"sqlpad/internal/service/notebook"
	"sqlpad/internal/service/query"
)

func TestRun_Args(t *testing.T) {
	settingsPath := isolateEnv(t)
	dbPath := db.TempDatabase(t)

	output, err := execute(t, "", "run", "--db", dbPath, "-f", "plain",
		"create table t(a, b); insert into t values (1, 'x');", "select a, b from t;")
	require.NoError(t, err)
	assert.Equal(t,
		">>> create table t(a, b)\nEmpty Data[]\nQuery Executed Successfully\n\n"+
			">>>  insert into t values (1, 'x')\nEmpty Data[]\nQuery Executed Successfully\n\n"+
			">>>  select a, b from t\n  a  b\n  1  x\n\n",
		output)

	saved, warnings := config.LoadSettings(settingsPath)
	assert.Empty(t, warnings)
	assert.Equal(t, dbPath, saved.LastDB)
	assert.Equal(t, "plain", saved.TableFormat)
}

func TestRun_UsesSavedSettings(t *testing.T) {
	settingsPath := isolateEnv(t)
	dbPath := db.TempDatabase(t, "create table t(a)", "insert into t values (7)")
	require.NoError(t, config.SaveSettings(settingsPath, &config.Settings{LastDB: dbPath, TableFormat: "github"}))

	output, err := execute(t, "", "run", "select a from t")
	require.NoError(t, err)
	assert.Equal(t, ">>> select a from t\n|   a |\n|-----|\n|   7 |\n\n", output)
}

func TestRun_Stdin(t *testing.T) {
	isolateEnv(t)
	dbPath := db.TempDatabase(t)

	output, err := execute(t, "select 1 as n;\n", "run", "--db", dbPath, "-f", "plain")
	require.NoError(t, err)
	assert.Equal(t, ">>> select 1 as n\n  n\n  1\n\n", output)
}

func TestRun_File(t *testing.T) {
	isolateEnv(t)
	dbPath := db.TempDatabase(t)
	nb := filepath.Join(t.TempDir(), "q.nbdb")
	require.NoError(t, notebook.Write(nb, "select 2 as m;"))

	output, err := execute(t, "", "run", "--db", dbPath, "-f", "plain", "--file", nb)
	require.NoError(t, err)
	assert.Equal(t, ">>> select 2 as m\n  m\n  2\n\n", output)

	_, err = execute(t, "", "run", "--db", dbPath, "--file", filepath.Join(t.TempDir(), "q.sql"))
	require.ErrorIs(t, err, notebook.ErrWrongFormat)

	_, err = execute(t, "", "run", "--db", dbPath, "--file", nb, "select 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestRun_EmptyBatch(t *testing.T) {
	isolateEnv(t)

	output, err := execute(t, " ;\n; ", "run", "--db", db.TempDatabase(t))
	require.NoError(t, err)
	assert.Equal(t, query.EmptyBatchOutput, output)
}

func TestRun_NoDatabase(t *testing.T) {
	isolateEnv(t)

	output, err := execute(t, "", "run", "--db", "", "select 1")
	require.NoError(t, err)
	assert.Equal(t, "Error: No database selected.\n\n", output)
}

func TestRun_ExitSentinel(t *testing.T) {
	isolateEnv(t)
	dbPath := db.TempDatabase(t)

	output, err := execute(t, "", "run", "--db", dbPath, "create table never(a);exit")
	require.ErrorIs(t, err, query.ErrExitRequested)
	assert.Empty(t, output)

	output, err = execute(t, "", "run", "--db", dbPath, "-f", "plain", "select count(*) as n from sqlite_master")
	require.NoError(t, err)
	assert.Contains(t, output, "  0\n", "nothing before the sentinel ran")
}

func TestRun_UnknownFormat(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "", "run", "--db", db.TempDatabase(t), "-f", "neon", "select 1")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestRun_OpenFailure(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "", "run", "--db", filepath.Join(t.TempDir(), "missing", "x.db"), "select 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sqlite")
}

func TestRun_JSONOutput(t *testing.T) {
	isolateEnv(t)
	dbPath := db.TempDatabase(t)

	output, err := execute(t, "", "-o", "json", "run", "--db", dbPath, "select 1 as n; select nope")
	require.NoError(t, err)

	var results []struct {
		Statement string `json:"statement"`
		Result    *struct {
			Columns []string        `json:"columns"`
			Rows    [][]interface{} `json:"rows"`
		} `json:"result"`
		Error *string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 2)

	assert.Equal(t, "select 1 as n", results[0].Statement)
	require.NotNil(t, results[0].Result)
	assert.Equal(t, []string{"n"}, results[0].Result.Columns)
	assert.Equal(t, [][]interface{}{{float64(1)}}, results[0].Result.Rows)
	assert.Nil(t, results[0].Error)

	assert.Equal(t, " select nope", results[1].Statement)
	require.NotNil(t, results[1].Error)
	assert.Contains(t, *results[1].Error, "no such column")
}

func TestRun_EmptyBatchJSON(t *testing.T) {
	isolateEnv(t)

	output, err := execute(t, "", "-o", "json", "run", "--db", db.TempDatabase(t), ";")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", output)
}
