package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sqlpad/internal/tableformat"
)

// FormatEntry describes one table style for structured output.
type FormatEntry struct {
	Name    string `json:"name" yaml:"name"`
	Default bool   `json:"default" yaml:"default"`
	Current bool   `json:"current" yaml:"current"`
}

func newFormatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:         "formats",
		Short:       "List table styles",
		Args:        cobra.NoArgs,
		Annotations: sessionAnnotation,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := s.app.Format()
			formats := tableformat.Formats()
			entries := make([]FormatEntry, len(formats))
			for i, f := range formats {
				entries[i] = FormatEntry{
					Name:    string(f),
					Default: f == tableformat.Default,
					Current: string(f) == current,
				}
			}

			switch getOutputFormat(cmd) {
			case "json":
				return printJSON(os.Stdout, entries)
			case "yaml":
				return printYAML(os.Stdout, entries)
			}

			for _, e := range entries {
				marker := "  "
				if e.Current {
					marker = "* "
				}
				suffix := ""
				if e.Default {
					suffix = " (default)"
				}
				_, _ = fmt.Fprintf(os.Stdout, "%s%s%s\n", marker, e.Name, suffix)
			}
			return nil
		},
	}
}
