package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sqlpad/internal/app"
	"sqlpad/internal/service/query"
	"sqlpad/internal/theme"
)

const (
	primaryPrompt      = "sqlpad> "
	continuationPrompt = "   ...> "
)

func newShellCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive SQL session",
		Long: `Reads statements line by line. Input is run once a line ends with ';'.
Lines starting with '.' are commands; type .help to list them.`,
		Args:        cobra.NoArgs,
		Annotations: sessionAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stdinIsTerminal() {
				return runTerminalShell(cmd.Context(), s)
			}
			sh := &shell{app: s.app, theme: s.theme, in: newScannerReader(cmd.InOrStdin()), out: os.Stdout}
			return sh.loop(cmd.Context())
		},
	}
}

// lineReader is the input side of the shell.
type lineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func newScannerReader(r io.Reader) *scannerReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &scannerReader{scanner: scanner}
}

func (r *scannerReader) ReadLine() (string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// SetPrompt is a no-op: piped input is not echoed.
func (r *scannerReader) SetPrompt(string) {}

func runTerminalShell(ctx context.Context, s *session) error {
	fd := int(os.Stdin.Fd()) //nolint:gosec // fd fits in int
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	screen := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	t := term.NewTerminal(screen, s.theme.Prompt.Sprint(primaryPrompt))
	if width, height, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(width, height)
	}

	_, _ = fmt.Fprintln(t, s.theme.Muted.Sprint("sqlpad "+version+". Statements end with ';'. Type .help for commands."))
	sh := &shell{app: s.app, theme: s.theme, in: &terminalReader{t: t, theme: s.theme}, out: t}
	return sh.loop(ctx)
}

type terminalReader struct {
	t     *term.Terminal
	theme *theme.Theme
}

func (r *terminalReader) ReadLine() (string, error) { return r.t.ReadLine() }

func (r *terminalReader) SetPrompt(prompt string) { r.t.SetPrompt(r.theme.Prompt.Sprint(prompt)) }

// shell accumulates lines into batches and hands them to the App.
type shell struct {
	app   *app.App
	theme *theme.Theme
	in    lineReader
	out   io.Writer
}

func (sh *shell) loop(ctx context.Context) error {
	var pending strings.Builder
	for {
		if pending.Len() == 0 {
			sh.in.SetPrompt(primaryPrompt)
		} else {
			sh.in.SetPrompt(continuationPrompt)
		}

		line, err := sh.in.ReadLine()
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(pending.String()) == "" {
				return nil
			}
			// Run what is left, as if it had been terminated.
			return sh.runBatch(ctx, pending.String())
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		if pending.Len() == 0 && app.IsCommand(line) {
			out, err := sh.app.Dispatch(ctx, line)
			switch {
			case errors.Is(err, app.ErrQuit):
				return nil
			case errors.Is(err, query.ErrExitRequested):
				return err
			case err != nil:
				sh.printError(err)
			default:
				sh.print(out)
			}
			continue
		}

		pending.WriteString(line)
		pending.WriteString("\n")
		if strings.HasSuffix(strings.TrimSpace(line), ";") || isExitLine(pending.String()) {
			text := pending.String()
			pending.Reset()
			if err := sh.runBatch(ctx, text); err != nil {
				if errors.Is(err, query.ErrExitRequested) {
					return err
				}
				sh.printError(err)
			}
		}
	}
}

// isExitLine reports whether text is a lone exit sentinel, which needs no
// terminating ';'.
func isExitLine(text string) bool {
	return query.RequestsExit(query.SplitBatch(strings.TrimSpace(text)))
}

func (sh *shell) runBatch(ctx context.Context, text string) error {
	sh.app.SetInput(text)
	out, err := sh.app.Run(ctx)
	if err != nil {
		return err
	}
	sh.print(out)
	return nil
}

func (sh *shell) print(out string) {
	if out == "" {
		return
	}
	_, _ = fmt.Fprint(sh.out, sh.theme.Paint(out))
}

func (sh *shell) printError(err error) {
	_, _ = fmt.Fprintf(sh.out, "%s %v\n", sh.theme.Error.Sprint("Error:"), err)
}
