// Package app provides the application object shared by the terminal hosts:
// the settings, the input and output buffers, and the open notebooks.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sqlpad/internal/config"
	"sqlpad/internal/service/notebook"
	"sqlpad/internal/tableformat"
)

// NoDatabaseOutput is appended when a run is attempted without a database.
const NoDatabaseOutput = "Error: No database selected.\n\n"

// ErrUnsavedNotebooks is returned when shutting down or closing would
// discard notebook edits.
var ErrUnsavedNotebooks = errors.New("unsaved notebooks")

// Runner executes a batch of SQL text and renders its output.
type Runner interface {
	ExecuteAndFormat(ctx context.Context, text, databasePath, tableFormat string) (string, error)
}

// Options configures New.
type Options struct {
	Settings     *config.Settings
	SettingsPath string
	Runner       Runner
	Logger       *slog.Logger
}

// App holds the session state. It is not safe for concurrent use; hosts
// drive it from a single goroutine.
type App struct {
	settings     *config.Settings
	settingsPath string
	runner       Runner
	logger       *slog.Logger

	input     string
	output    strings.Builder
	notebooks []*notebook.Document
	current   *notebook.Document
}

// New creates an App. Missing settings fall back to the defaults.
func New(opts Options) *App {
	if opts.Settings == nil {
		opts.Settings = config.DefaultSettings()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &App{
		settings:     opts.Settings,
		settingsPath: opts.SettingsPath,
		runner:       opts.Runner,
		logger:       opts.Logger,
	}
}

// Settings returns the live settings; changes made through the App are
// visible here.
func (a *App) Settings() *config.Settings { return a.settings }

// SetInput replaces the input buffer.
func (a *App) SetInput(text string) { a.input = text }

// Input returns the input buffer.
func (a *App) Input() string { return a.input }

// Output returns everything appended to the output buffer so far.
func (a *App) Output() string { return a.output.String() }

// ClearOutput empties the output buffer.
func (a *App) ClearOutput() { a.output.Reset() }

// SetDatabase selects the database file later runs use. SQLite creates the
// file on first use, so this covers both new and existing databases.
func (a *App) SetDatabase(path string) {
	a.settings.LastDB = path
	a.logger.Debug("database selected", "path", path)
}

// Database returns the selected database path.
func (a *App) Database() string { return a.settings.LastDB }

// SetFormat selects the table style by name.
func (a *App) SetFormat(name string) error {
	f, err := tableformat.Parse(name)
	if err != nil {
		return err
	}
	a.settings.TableFormat = string(f)
	return nil
}

// Format returns the selected table style.
func (a *App) Format() string { return a.settings.TableFormat }

// ClearInput reports whether the input is cleared after a successful run.
func (a *App) ClearInput() bool { return a.settings.ClearInput }

// ToggleClearInput flips the clear-input option and returns the new value.
// Switching it on also clears the current input.
func (a *App) ToggleClearInput() bool {
	a.settings.ClearInput = !a.settings.ClearInput
	if a.settings.ClearInput {
		a.input = ""
	}
	return a.settings.ClearInput
}

// Run executes the input buffer and appends the rendered output. It returns
// the text that was appended.
func (a *App) Run(ctx context.Context) (string, error) {
	out, err := a.run(ctx, a.input)
	if err != nil {
		return "", err
	}
	if a.settings.ClearInput && out != NoDatabaseOutput {
		a.input = ""
	}
	return out, nil
}

// RunNotebook executes the text of doc against the selected database. The
// input buffer is left alone.
func (a *App) RunNotebook(ctx context.Context, doc *notebook.Document) (string, error) {
	return a.run(ctx, doc.Text())
}

func (a *App) run(ctx context.Context, text string) (string, error) {
	dbPath := strings.TrimSpace(a.settings.LastDB)
	if dbPath == "" {
		a.output.WriteString(NoDatabaseOutput)
		return NoDatabaseOutput, nil
	}
	if a.runner == nil {
		return "", errors.New("no query runner configured")
	}

	out, err := a.runner.ExecuteAndFormat(ctx, strings.TrimSpace(text), dbPath, a.settings.TableFormat)
	if err != nil {
		return "", err
	}
	a.output.WriteString(out)
	return out, nil
}

// NewNotebook opens an untitled notebook and makes it current.
func (a *App) NewNotebook() *notebook.Document {
	doc := notebook.New()
	a.notebooks = append(a.notebooks, doc)
	a.current = doc
	return doc
}

// OpenNotebook opens the notebook at path and makes it current. A notebook
// that is already open is reused.
func (a *App) OpenNotebook(path string) (*notebook.Document, error) {
	for _, doc := range a.notebooks {
		if doc.Path() == path {
			a.current = doc
			return doc, nil
		}
	}
	doc, err := notebook.Open(path)
	if err != nil {
		return nil, err
	}
	a.notebooks = append(a.notebooks, doc)
	a.current = doc
	a.logger.Debug("notebook opened", "path", path)
	return doc, nil
}

// CurrentNotebook returns the notebook last created or opened, or nil.
func (a *App) CurrentNotebook() *notebook.Document { return a.current }

// CloseNotebook closes doc. A modified notebook is only closed when force
// is set.
func (a *App) CloseNotebook(doc *notebook.Document, force bool) error {
	idx := -1
	for i, d := range a.notebooks {
		if d == doc {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New("notebook is not open")
	}
	if doc.Modified() && !force {
		return fmt.Errorf("%w: %s", ErrUnsavedNotebooks, doc.Title())
	}
	a.notebooks = append(a.notebooks[:idx], a.notebooks[idx+1:]...)
	if a.current == doc {
		a.current = nil
	}
	return nil
}

// Notebooks returns the open notebooks in the order they were opened.
func (a *App) Notebooks() []*notebook.Document {
	out := make([]*notebook.Document, len(a.notebooks))
	copy(out, a.notebooks)
	return out
}

func (a *App) unsaved() []string {
	var titles []string
	for _, doc := range a.notebooks {
		if doc.Modified() {
			titles = append(titles, doc.Title())
		}
	}
	return titles
}

// Shutdown saves the settings and closes every notebook. Unless force is
// set it refuses to discard modified notebooks.
func (a *App) Shutdown(force bool) error {
	if titles := a.unsaved(); len(titles) > 0 && !force {
		return fmt.Errorf("%w: %s", ErrUnsavedNotebooks, strings.Join(titles, ", "))
	}
	a.notebooks = nil
	a.current = nil

	if a.settingsPath == "" {
		return nil
	}
	a.settings.LastDB = strings.TrimSpace(a.settings.LastDB)
	if err := config.SaveSettings(a.settingsPath, a.settings); err != nil {
		return err
	}
	a.logger.Debug("settings saved", "path", a.settingsPath)
	return nil
}
