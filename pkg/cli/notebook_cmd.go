package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sqlpad/internal/service/notebook"
)

func newNotebookCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebook",
		Short: "Read, write and run .nbdb notebooks",
	}

	cmd.AddCommand(newNotebookShowCmd())
	cmd.AddCommand(newNotebookWriteCmd())
	cmd.AddCommand(newNotebookRunCmd(s))

	return cmd
}

func newNotebookShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Print a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			text, err := notebook.Read(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(os.Stdout, text)
			return nil
		},
	}
}

func newNotebookWriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write <path>",
		Short: "Replace a notebook with standard input",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check the name before consuming stdin.
			if err := notebook.CheckPath(args[0]); err != nil {
				return err
			}
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			if err := notebook.Write(args[0], string(data)); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(os.Stdout, "Notebook written to %s\n", args[0])
			return nil
		},
	}
}

func newNotebookRunCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "run <path>",
		Short:       "Run a notebook against the database",
		Args:        cobra.ExactArgs(1),
		Annotations: sessionAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := s.app.OpenNotebook(args[0])
			if err != nil {
				return err
			}
			out, err := s.app.RunNotebook(cmd.Context(), doc)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(os.Stdout, s.theme.Paint(out))
			return nil
		},
	}
}
