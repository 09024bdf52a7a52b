package tableformat

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"sqlpad/internal/domain"
)

type align int

const (
	alignLeft align = iota
	alignRight
	alignCenter
)

// line describes a horizontal rule: begin + fill*width joined by sep + end.
type line struct {
	begin, fill, sep, end string
}

func (l line) build(widths []int, _ []align) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat(l.fill, w)
	}
	return rstrip(l.begin + strings.Join(parts, l.sep) + l.end)
}

// row describes a row of already padded cells.
type row struct {
	begin, sep, end string
}

func (r row) build(cells []string, _ []int, _ []align) string {
	return rstrip(r.begin + strings.Join(cells, r.sep) + r.end)
}

type (
	lineFunc func(widths []int, aligns []align) string
	rowFunc  func(cells []string, widths []int, aligns []align) string
)

// style is the layout of one table format. Nil lines are not drawn.
type style struct {
	above, belowHeader, between, below lineFunc
	header, data                       rowFunc

	padding int
	// hideAbove and hideBelow drop the outer rules when a header is present.
	hideAbove, hideBelow bool
	center               bool
	// escape is applied to aligned cells, so widths count unescaped text.
	escape func(string) string
}

// table holds stringified cells with their column layout.
type table struct {
	headers []string
	cells   [][]string
	aligns  []align
	widths  []int
}

// Render formats rows as a table in style f. A nil headers slice renders an
// unlabeled table.
func Render(headers []string, rows [][]interface{}, f Format) (string, error) {
	if f == HTML {
		return renderHTML(headers, rows)
	}
	st, ok := styles[f]
	if !ok {
		return "", domain.ErrValidation("unknown table format %q", string(f))
	}
	return st.render(newTable(headers, rows, st.center)), nil
}

// newTable stringifies rows by column kind. Numeric columns are right
// aligned on the decimal point; center disables number formatting.
func newTable(headers []string, rows [][]interface{}, center bool) *table {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}

	kinds := make([]columnKind, ncols)
	for _, values := range rows {
		for c, v := range values {
			kinds[c] = kinds[c].widen(v)
		}
	}
	if center {
		for c := range kinds {
			kinds[c] = kindText
		}
	}

	t := &table{
		cells:  make([][]string, len(rows)),
		aligns: make([]align, ncols),
		widths: make([]int, ncols),
	}
	for r, values := range rows {
		cells := make([]string, ncols)
		for c := range cells {
			var v interface{}
			if c < len(values) {
				v = values[c]
			}
			cells[c] = kinds[c].format(v)
		}
		t.cells[r] = cells
	}

	for c, k := range kinds {
		switch {
		case center:
			t.aligns[c] = alignCenter
		case k.numeric():
			t.aligns[c] = alignRight
			if k == kindReal {
				t.alignDecimals(c)
			}
		default:
			t.aligns[c] = alignLeft
		}
	}

	for _, cells := range t.cells {
		for c, cell := range cells {
			if w := cellWidth(cell); w > t.widths[c] {
				t.widths[c] = w
			}
		}
	}

	if headers != nil {
		minPadding := 2
		if center {
			minPadding = 0
		}
		t.headers = make([]string, ncols)
		for c := range t.headers {
			if c < len(headers) {
				t.headers[c] = headers[c]
			}
			if w := cellWidth(t.headers[c]) + minPadding; w > t.widths[c] {
				t.widths[c] = w
			}
		}
	}
	return t
}

// alignDecimals pads the cells of column c on the right so their decimal
// points line up once the column is right aligned.
func (t *table) alignDecimals(c int) {
	most := -1
	for _, cells := range t.cells {
		most = max(most, decimals(cells[c]))
	}
	if most < 0 {
		return
	}
	for _, cells := range t.cells {
		cells[c] += strings.Repeat(" ", most-decimals(cells[c]))
	}
}

func (s *style) render(t *table) string {
	widths := make([]int, len(t.widths))
	for i, w := range t.widths {
		widths[i] = w + 2*s.padding
	}
	hasHeader := t.headers != nil

	var out []string
	if s.above != nil && !(hasHeader && s.hideAbove) {
		out = append(out, s.above(widths, t.aligns))
	}
	if hasHeader {
		out = append(out, s.physicalRows(s.header, t.headers, t, widths)...)
		if s.belowHeader != nil {
			out = append(out, s.belowHeader(widths, t.aligns))
		}
	}
	for i, cells := range t.cells {
		if i > 0 && s.between != nil {
			out = append(out, s.between(widths, t.aligns))
		}
		out = append(out, s.physicalRows(s.data, cells, t, widths)...)
	}
	if s.below != nil && !(hasHeader && s.hideBelow) {
		out = append(out, s.below(widths, t.aligns))
	}
	return strings.Join(out, "\n")
}

// physicalRows splits multi-line cells and builds one output row per line.
func (s *style) physicalRows(build rowFunc, cells []string, t *table, widths []int) []string {
	split := make([][]string, len(cells))
	height := 1
	for i, c := range cells {
		split[i] = strings.Split(c, "\n")
		if len(split[i]) > height {
			height = len(split[i])
		}
	}

	pad := strings.Repeat(" ", s.padding)
	out := make([]string, 0, height)
	for k := 0; k < height; k++ {
		padded := make([]string, len(cells))
		for i := range cells {
			var text string
			if k < len(split[i]) {
				text = split[i][k]
			}
			text = alignCell(text, t.widths[i], t.aligns[i])
			if s.escape != nil && strings.TrimSpace(text) != domain.BlobPlaceholder {
				text = s.escape(text)
			}
			padded[i] = pad + text + pad
		}
		out = append(out, build(padded, widths, t.aligns))
	}
	return out
}

func alignCell(s string, width int, a align) string {
	margin := width - runewidth.StringWidth(s)
	if margin <= 0 {
		return s
	}
	switch a {
	case alignRight:
		return strings.Repeat(" ", margin) + s
	case alignCenter:
		left := margin/2 + (margin & width & 1)
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", margin-left)
	default:
		return s + strings.Repeat(" ", margin)
	}
}

// cellWidth is the display width of the widest line in s.
func cellWidth(s string) int {
	w := 0
	for _, part := range strings.Split(s, "\n") {
		if n := runewidth.StringWidth(part); n > w {
			w = n
		}
	}
	return w
}

func rstrip(s string) string {
	return strings.TrimRight(s, " \t")
}
