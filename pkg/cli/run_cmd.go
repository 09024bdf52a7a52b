package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sqlpad/internal/domain"
	"sqlpad/internal/service/notebook"
)

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}

func newRunCmd(s *session) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "run [SQL...]",
		Short: "Run SQL statements against the database",
		Long: `Runs a batch of ';'-separated statements and prints one section per
statement. The SQL comes from the arguments, from a notebook given with
--file, or from standard input when it is not a terminal.

A batch containing the statement "exit" or "exit()" runs nothing and ends
the program successfully.`,
		Example: `  sqlpad run --db shop.db "select * from orders;"
  sqlpad run -f github --file report.nbdb
  echo "select sqlite_version();" | sqlpad run`,
		Annotations: sessionAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSQL(cmd, args, file)
			if err != nil {
				return err
			}

			if out := getOutputFormat(cmd); out == "json" || out == "yaml" {
				return runStructured(cmd, s, text, out)
			}

			s.app.SetInput(text)
			output, err := s.app.Run(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(os.Stdout, s.theme.Paint(output))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Run the SQL stored in a .nbdb notebook")

	return cmd
}

// readSQL picks the batch text from exactly one source.
func readSQL(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", errors.New("give SQL either as arguments or with --file, not both")
	case file != "":
		return notebook.Read(file)
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case !stdinIsTerminal():
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return "", errors.New("no SQL given: pass statements, --file or pipe them on stdin")
	}
}

// runStructured prints raw per-statement results instead of rendered tables.
func runStructured(cmd *cobra.Command, s *session, text, format string) error {
	dbPath := strings.TrimSpace(s.app.Database())
	if dbPath == "" {
		return errors.New("no database selected")
	}
	results, err := s.runner.Execute(cmd.Context(), strings.TrimSpace(text), dbPath)
	if err != nil {
		return err
	}
	if results == nil {
		results = []domain.StatementResult{}
	}
	if format == "yaml" {
		return printYAML(os.Stdout, results)
	}
	return printJSON(os.Stdout, results)
}
