package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqlpad/internal/domain"
	"sqlpad/internal/service/notebook"
)

func TestDispatch_Settings(t *testing.T) {
	a := newTestApp(t, &fakeRunner{})
	ctx := context.Background()

	tests := []struct {
		line string
		want string
	}{
		{line: ".db", want: "Database: database.db\n"},
		{line: ".db  shop.db ", want: "Database: shop.db\n"},
		{line: ".format", want: "Format: simple_outline\n"},
		{line: ".format rst", want: "Format: rst\n"},
		{line: ".clearinput", want: "Clear input: on\n"},
		{line: ".clearinput", want: "Clear input: off\n"},
		{line: ".notebooks", want: "No open notebooks.\n"},
	}
	for _, tt := range tests {
		got, err := a.Dispatch(ctx, tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
	assert.Equal(t, "shop.db", a.Database())
	assert.Equal(t, "rst", a.Format())
}

func TestDispatch_RunAndClear(t *testing.T) {
	runner := &fakeRunner{out: ">>> select 1\n1\n\n"}
	a := newTestApp(t, runner)
	a.SetInput("select 1")

	got, err := a.Dispatch(context.Background(), ".run")
	require.NoError(t, err)
	assert.Equal(t, runner.out, got)
	assert.Equal(t, runner.out, a.Output())

	got, err = a.Dispatch(context.Background(), ".input")
	require.NoError(t, err)
	assert.Equal(t, "select 1\n", got)

	_, err = a.Dispatch(context.Background(), ".clear")
	require.NoError(t, err)
	assert.Empty(t, a.Output())
}

func TestDispatch_Formats(t *testing.T) {
	a := newTestApp(t, &fakeRunner{})
	got, err := a.Dispatch(context.Background(), ".formats")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	assert.Len(t, lines, 22)
	assert.Contains(t, lines, "* simple_outline")
	assert.Contains(t, lines, "  html")
}

func TestDispatch_Notebooks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.nbdb")
	a := newTestApp(t, &fakeRunner{})
	ctx := context.Background()

	_, err := a.Dispatch(ctx, ".save")
	require.ErrorIs(t, err, notebook.ErrNoPath)

	_, err = a.Dispatch(ctx, ".save "+filepath.Join(dir, "q.sql"))
	require.ErrorIs(t, err, notebook.ErrWrongFormat)
	assert.Empty(t, a.Notebooks())

	a.SetInput("select 1;")
	got, err := a.Dispatch(ctx, ".save "+path)
	require.NoError(t, err)
	assert.Equal(t, "Saved "+path+"\n", got)
	text, err := notebook.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "select 1;", text)

	a.SetInput("select 2;")
	_, err = a.Dispatch(ctx, ".save")
	require.NoError(t, err)
	text, err = notebook.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "select 2;", text)

	got, err = a.Dispatch(ctx, ".new")
	require.NoError(t, err)
	assert.Equal(t, "Untitled - Notepad\n", got)
	assert.Empty(t, a.Input())

	got, err = a.Dispatch(ctx, ".open "+path)
	require.NoError(t, err)
	assert.Equal(t, path+" - Notepad\n", got)
	assert.Equal(t, "select 2;", a.Input())

	got, err = a.Dispatch(ctx, ".notebooks")
	require.NoError(t, err)
	assert.Equal(t, "> "+path+" - Notepad\n  Untitled - Notepad\n", got)

	_, err = a.Dispatch(ctx, ".open")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDispatch_Quit(t *testing.T) {
	a := newTestApp(t, &fakeRunner{})
	ctx := context.Background()

	_, err := a.Dispatch(ctx, ".quit")
	require.ErrorIs(t, err, ErrQuit)

	a.NewNotebook().SetText("draft")
	_, err = a.Dispatch(ctx, ".quit")
	require.ErrorIs(t, err, ErrUnsavedNotebooks)
	assert.Contains(t, err.Error(), ".quit!")

	_, err = a.Dispatch(ctx, ".quit!")
	require.ErrorIs(t, err, ErrQuit)
}

func TestDispatch_Unknown(t *testing.T) {
	a := newTestApp(t, &fakeRunner{})
	_, err := a.Dispatch(context.Background(), ".vacuum")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), `unknown command ".vacuum"`)
}

func TestHelp(t *testing.T) {
	help := Help()
	for _, c := range Commands {
		assert.Contains(t, help, c.Name)
	}
}

func TestIsCommand(t *testing.T) {
	assert.True(t, IsCommand("  .run"))
	assert.False(t, IsCommand("select .5;"))
}
