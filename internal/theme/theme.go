// Package theme holds the terminal colour palettes of the shell.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Theme is a set of colours for the interactive shell.
type Theme struct {
	Name   string
	Prompt *color.Color // prompt and command names
	Echo   *color.Color // ">>> " statement echo lines
	Error  *color.Color
	Muted  *color.Color // hints and placeholders
}

// Light is the palette for light terminal backgrounds.
func Light() *Theme {
	return &Theme{
		Name:   "light",
		Prompt: color.RGB(0x09, 0x5e, 0xb8),
		Echo:   color.RGB(0x12, 0x7d, 0xef).Add(color.Bold),
		Error:  color.New(color.FgRed, color.Bold),
		Muted:  color.RGB(0x69, 0x69, 0x69),
	}
}

// Dark is the palette for dark terminal backgrounds.
func Dark() *Theme {
	return &Theme{
		Name:   "dark",
		Prompt: color.RGB(0xd2, 0xaa, 0x02),
		Echo:   color.RGB(0xd2, 0xaa, 0x02).Add(color.Bold),
		Error:  color.New(color.FgHiRed, color.Bold),
		Muted:  color.RGB(0x8a, 0x8a, 0x8a),
	}
}

// ByName returns the named theme. "auto" picks light or dark from the
// COLORFGBG variable many terminals export.
func ByName(name string) (*Theme, error) {
	switch strings.ToLower(name) {
	case "light":
		return Light(), nil
	case "dark":
		return Dark(), nil
	case "auto", "":
		if lightBackground(os.Getenv("COLORFGBG")) {
			return Light(), nil
		}
		return Dark(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q", name)
	}
}

// lightBackground reads the background field of a "fg;bg" or "fg;x;bg" value.
func lightBackground(colorfgbg string) bool {
	if colorfgbg == "" {
		return false
	}
	fields := strings.Split(colorfgbg, ";")
	switch fields[len(fields)-1] {
	case "7", "15":
		return true
	}
	return false
}

// Paint colours the statement echo lines of runner output.
func (t *Theme) Paint(output string) string {
	lines := strings.Split(output, "\n")
	for i, l := range lines {
		if l == ">>>" || strings.HasPrefix(l, ">>> ") {
			lines[i] = t.Echo.Sprint(l)
		}
	}
	return strings.Join(lines, "\n")
}
