package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"sqlpad/internal/tableformat"
)

// getOutputFormat returns the effective output format from the root command's persistent flags.
func getOutputFormat(cmd *cobra.Command) string {
	v, _ := cmd.Root().PersistentFlags().GetString("output")
	return v
}

func validateOutputFormat(output string) error {
	switch output {
	case "", "text", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unsupported output format %q: use 'text', 'json' or 'yaml'", output)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// printTable writes rows under columns in the simple style.
func printTable(w io.Writer, columns []string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		values[i] = make([]interface{}, len(r))
		for j, cell := range r {
			values[i][j] = cell
		}
	}
	out, err := tableformat.Render(columns, values, tableformat.Simple)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
