// Package cli implements the sqlpad command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sqlpad/internal/service/query"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	rootCmd := newRootCmd()
	return exitStatus(rootCmd, rootCmd.Execute(), os.Stderr)
}

// exitStatus reports err and maps it to an exit status. The exit sentinel
// is a normal way to leave.
func exitStatus(rootCmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil || errors.Is(err, query.ErrExitRequested) {
		return 0
	}
	if getOutputFormat(rootCmd) == "json" {
		_ = printJSON(os.Stdout, map[string]string{"error": err.Error()})
		return 1
	}
	errColor := color.New(color.FgRed, color.Bold)
	_, _ = fmt.Fprintf(stderr, "%s %v\n", errColor.Sprint("Error:"), err)
	return 1
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	s := &session{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "sqlpad",
		Short: "SQLite scratchpad",
		Long: `Run batches of SQL statements against a SQLite database file and print
each statement's result as a text table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateOutputFormat(opts.output); err != nil {
				return err
			}
			if !needsSession(cmd) {
				return nil
			}
			return s.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return s.close()
		},
	}

	addRootFlags(rootCmd.PersistentFlags(), opts)

	rootCmd.AddCommand(newRunCmd(s))
	rootCmd.AddCommand(newShellCmd(s))
	rootCmd.AddCommand(newNotebookCmd(s))
	rootCmd.AddCommand(newFormatsCmd(s))
	rootCmd.AddCommand(newSettingsCmd(s))
	rootCmd.AddCommand(newVersionCmd())

	// Discovery
	rootCmd.AddCommand(newCommandsCmd())

	// Shell completions
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
