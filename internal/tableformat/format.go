// Package tableformat renders result rows as text tables in a fixed set of
// named styles.
package tableformat

import (
	"sort"

	"sqlpad/internal/domain"
)

// Format names a table style.
type Format string

// Supported table styles.
const (
	DoubleGrid    Format = "double_grid"
	DoubleOutline Format = "double_outline"
	FancyGrid     Format = "fancy_grid"
	FancyOutline  Format = "fancy_outline"
	Github        Format = "github"
	HTML          Format = "html"
	Latex         Format = "latex"
	Mediawiki     Format = "mediawiki"
	Moinmoin      Format = "moinmoin"
	Orgtbl        Format = "orgtbl"
	Grid          Format = "grid"
	Outline       Format = "outline"
	Pipe          Format = "pipe"
	Plain         Format = "plain"
	Presto        Format = "presto"
	Pretty        Format = "pretty"
	Psql          Format = "psql"
	Rst           Format = "rst"
	Simple        Format = "simple"
	SimpleGrid    Format = "simple_grid"
	SimpleOutline Format = "simple_outline"
	Textile       Format = "textile"
)

// Default is the style used when none is configured.
const Default = SimpleOutline

// Formats returns every supported style name in sorted order.
func Formats() []Format {
	out := make([]Format, 0, len(styles)+1)
	for f := range styles {
		out = append(out, f)
	}
	out = append(out, HTML)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Valid reports whether f is a supported style.
func (f Format) Valid() bool {
	if f == HTML {
		return true
	}
	_, ok := styles[f]
	return ok
}

// Parse converts a style name to a Format.
func Parse(name string) (Format, error) {
	f := Format(name)
	if !f.Valid() {
		return "", domain.ErrValidation("unknown table format %q", name)
	}
	return f, nil
}
