package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsKeys = []string{"last_db", "table_format", "clear_input"}

func newSettingsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change the persisted settings",
	}

	cmd.AddCommand(newSettingsShowCmd(s))
	cmd.AddCommand(newSettingsSetCmd(s))
	cmd.AddCommand(newSettingsPathCmd(s))

	return cmd
}

func newSettingsShowCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Display the current settings",
		Args:        cobra.NoArgs,
		Annotations: sessionAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if getOutputFormat(cmd) == "json" {
				return printJSON(os.Stdout, s.app.Settings())
			}
			return printYAML(os.Stdout, s.app.Settings())
		},
	}
}

func newSettingsSetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "set <key> <value>",
		Short:       "Change one setting (last_db, table_format, clear_input)",
		Args:        cobra.ExactArgs(2),
		Annotations: sessionAnnotation,
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return settingsKeys, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(_ *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			switch key {
			case "last_db":
				s.app.SetDatabase(value)
			case "table_format":
				if err := s.app.SetFormat(value); err != nil {
					return err
				}
			case "clear_input":
				on, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("clear_input: %q is not a boolean", value)
				}
				if on != s.app.ClearInput() {
					s.app.ToggleClearInput()
				}
			default:
				return fmt.Errorf("unknown setting %q: use last_db, table_format or clear_input", key)
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s set to %q\n", key, value)
			return nil
		},
	}
}

func newSettingsPathCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the settings file location",
		Args:        cobra.NoArgs,
		Annotations: sessionAnnotation,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(os.Stdout, s.settingsPath)
			return nil
		},
	}
}
