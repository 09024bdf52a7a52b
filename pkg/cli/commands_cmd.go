package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sqlpad/internal/app"
)

// Command surfaces.
const (
	surfaceCLI   = "cli"
	surfaceShell = "shell"
)

// CommandInfo describes a subcommand or a shell meta-command.
type CommandInfo struct {
	Surface string     `json:"surface" yaml:"surface"`
	Name    string     `json:"name" yaml:"name"`
	Args    string     `json:"args,omitempty" yaml:"args,omitempty"`
	Summary string     `json:"summary" yaml:"summary"`
	Flags   []FlagInfo `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// FlagInfo describes one flag of a subcommand.
type FlagInfo struct {
	Name      string `json:"name" yaml:"name"`
	Shorthand string `json:"shorthand,omitempty" yaml:"shorthand,omitempty"`
	Default   string `json:"default,omitempty" yaml:"default,omitempty"`
	Usage     string `json:"usage" yaml:"usage"`
}

func newCommandsCmd() *cobra.Command {
	var (
		surface string
		filter  string
	)

	cmd := &cobra.Command{
		Use:   "commands",
		Short: "List subcommands and shell meta-commands",
		Long: `Lists every sqlpad subcommand with its flags, followed by the
meta-commands the interactive shell accepts.`,
		Example: `  sqlpad commands
  sqlpad commands --surface shell
  sqlpad commands --filter notebook -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var infos []CommandInfo
			switch surface {
			case "":
				infos = append(cliCommands(cmd.Root()), shellCommands()...)
			case surfaceCLI:
				infos = cliCommands(cmd.Root())
			case surfaceShell:
				infos = shellCommands()
			default:
				return fmt.Errorf("unknown surface %q (want %s or %s)", surface, surfaceCLI, surfaceShell)
			}
			infos = matching(infos, filter)

			switch getOutputFormat(cmd) {
			case "json":
				return printJSON(os.Stdout, infos)
			case "yaml":
				return printYAML(os.Stdout, infos)
			}
			rows := make([][]string, len(infos))
			for i, c := range infos {
				rows[i] = []string{c.Surface, strings.TrimSpace(c.Name + " " + c.Args), c.Summary}
			}
			return printTable(os.Stdout, []string{"SURFACE", "COMMAND", "DESCRIPTION"}, rows)
		},
	}

	cmd.Flags().StringVar(&surface, "surface", "", "Only list one surface (cli or shell)")
	cmd.Flags().StringVar(&filter, "filter", "", "Case-insensitive substring of the name or description")
	return cmd
}

// cliCommands lists the runnable subcommands under root, depth first.
func cliCommands(root *cobra.Command) []CommandInfo {
	var infos []CommandInfo
	var walk func(*cobra.Command)
	walk = func(c *cobra.Command) {
		for _, child := range c.Commands() {
			if child.Hidden || child.Name() == "help" || child.Name() == "completion" {
				continue
			}
			if child.HasSubCommands() {
				walk(child)
				continue
			}
			_, args, _ := strings.Cut(child.Use, " ")
			infos = append(infos, CommandInfo{
				Surface: surfaceCLI,
				Name:    strings.TrimPrefix(child.CommandPath(), root.Name()+" "),
				Args:    args,
				Summary: child.Short,
				Flags:   localFlags(child),
			})
		}
	}
	walk(root)
	return infos
}

func localFlags(c *cobra.Command) []FlagInfo {
	var flags []FlagInfo
	c.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		flags = append(flags, FlagInfo{Name: f.Name, Shorthand: f.Shorthand, Default: f.DefValue, Usage: f.Usage})
	})
	return flags
}

// shellCommands lists the shell meta-commands, forced quit included.
func shellCommands() []CommandInfo {
	infos := make([]CommandInfo, 0, len(app.Commands)+1)
	for _, c := range app.Commands {
		infos = append(infos, CommandInfo{Surface: surfaceShell, Name: c.Name, Args: c.Args, Summary: c.Usage})
	}
	return append(infos, CommandInfo{Surface: surfaceShell, Name: ".quit!", Summary: "leave, discarding unsaved notebooks"})
}

func matching(infos []CommandInfo, filter string) []CommandInfo {
	if filter == "" {
		return infos
	}
	needle := strings.ToLower(filter)
	out := make([]CommandInfo, 0, len(infos))
	for _, c := range infos {
		if strings.Contains(strings.ToLower(c.Name+" "+c.Summary), needle) {
			out = append(out, c)
		}
	}
	return out
}
