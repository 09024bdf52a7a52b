package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sqlpad/internal/domain"
	"sqlpad/internal/service/notebook"
	"sqlpad/internal/tableformat"
)

// ErrQuit is returned by Dispatch when the host should end the session.
var ErrQuit = errors.New("quit")

// Command describes one shell meta-command.
type Command struct {
	Name  string
	Args  string
	Usage string
}

// Commands lists the meta-commands Dispatch understands.
var Commands = []Command{
	{Name: ".run", Usage: "run the input"},
	{Name: ".db", Args: "[PATH]", Usage: "show or select the database file"},
	{Name: ".format", Args: "[NAME]", Usage: "show or select the table style"},
	{Name: ".formats", Usage: "list table styles"},
	{Name: ".clearinput", Usage: "toggle clearing the input after a run"},
	{Name: ".clear", Usage: "clear the output"},
	{Name: ".input", Usage: "show the input"},
	{Name: ".new", Usage: "start an untitled notebook"},
	{Name: ".open", Args: "PATH", Usage: "open a notebook into the input"},
	{Name: ".save", Args: "[PATH]", Usage: "save the input to the current notebook"},
	{Name: ".notebooks", Usage: "list open notebooks"},
	{Name: ".help", Usage: "show this help"},
	{Name: ".quit", Usage: "leave, refusing to drop unsaved notebooks (.quit! forces)"},
}

// IsCommand reports whether line is a meta-command rather than SQL.
func IsCommand(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ".")
}

// Dispatch runs one meta-command line and returns the text to show.
func (a *App) Dispatch(ctx context.Context, line string) (string, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ".run":
		return a.Run(ctx)
	case ".db":
		if arg != "" {
			a.SetDatabase(arg)
		}
		if a.Database() == "" {
			return "No database selected.\n", nil
		}
		return fmt.Sprintf("Database: %s\n", a.Database()), nil
	case ".format":
		if arg != "" {
			if err := a.SetFormat(arg); err != nil {
				return "", err
			}
		}
		return fmt.Sprintf("Format: %s\n", a.Format()), nil
	case ".formats":
		return a.formatList(), nil
	case ".clearinput":
		if a.ToggleClearInput() {
			return "Clear input: on\n", nil
		}
		return "Clear input: off\n", nil
	case ".clear":
		a.ClearOutput()
		return "", nil
	case ".input":
		if a.input == "" {
			return "", nil
		}
		return strings.TrimRight(a.input, "\n") + "\n", nil
	case ".new":
		doc := a.NewNotebook()
		a.input = ""
		return doc.Title() + "\n", nil
	case ".open":
		if arg == "" {
			return "", domain.ErrValidation("usage: .open PATH")
		}
		doc, err := a.OpenNotebook(arg)
		if err != nil {
			return "", err
		}
		a.input = doc.Text()
		return doc.Title() + "\n", nil
	case ".save":
		return a.save(arg)
	case ".notebooks":
		return a.notebookList(), nil
	case ".help":
		return Help(), nil
	case ".quit":
		if titles := a.unsaved(); len(titles) > 0 {
			return "", fmt.Errorf("%w: %s (use .quit! to discard)", ErrUnsavedNotebooks, strings.Join(titles, ", "))
		}
		return "", ErrQuit
	case ".quit!":
		return "", ErrQuit
	default:
		return "", domain.ErrValidation("unknown command %q; type .help", name)
	}
}

// save writes the input into the current notebook, creating one when none
// is open. A path saves under that name.
func (a *App) save(path string) (string, error) {
	// Reject a bad name before touching any document.
	if path != "" {
		if err := notebook.CheckPath(path); err != nil {
			return "", err
		}
	}

	doc := a.current
	if doc == nil {
		if path == "" {
			return "", notebook.ErrNoPath
		}
		doc = a.NewNotebook()
	}
	doc.SetText(a.input)

	var err error
	if path != "" {
		err = doc.SaveAs(path)
	} else {
		err = doc.Save()
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Saved %s\n", doc.Path()), nil
}

func (a *App) formatList() string {
	var b strings.Builder
	for _, f := range tableformat.Formats() {
		marker := "  "
		if string(f) == a.Format() {
			marker = "* "
		}
		b.WriteString(marker + string(f) + "\n")
	}
	return b.String()
}

func (a *App) notebookList() string {
	if len(a.notebooks) == 0 {
		return "No open notebooks.\n"
	}
	var b strings.Builder
	for _, doc := range a.notebooks {
		marker := "  "
		if doc == a.current {
			marker = "> "
		}
		title := doc.Title()
		if doc.Modified() {
			title += " *"
		}
		b.WriteString(marker + title + "\n")
	}
	return b.String()
}

// Help renders the meta-command reference.
func Help() string {
	var b strings.Builder
	b.WriteString("Statements end with ';'. Meta-commands:\n")
	for _, c := range Commands {
		usage := c.Name
		if c.Args != "" {
			usage += " " + c.Args
		}
		fmt.Fprintf(&b, "  %-16s %s\n", usage, c.Usage)
	}
	return b.String()
}
