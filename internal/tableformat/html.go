package tableformat

import (
	"fmt"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"sqlpad/internal/domain"
)

var newline = gomponents.Text("\n")

func renderHTML(headers []string, rows [][]interface{}) (string, error) {
	t := newTable(headers, rows, false)

	var sections []gomponents.Node
	sections = append(sections, newline)
	if t.headers != nil {
		sections = append(sections,
			html.THead(newline, htmlRow(html.Th, t.headers, t), newline),
			newline,
		)
	}
	body := []gomponents.Node{newline}
	for _, cells := range t.cells {
		body = append(body, htmlRow(html.Td, cells, t), newline)
	}
	sections = append(sections, html.TBody(gomponents.Group(body)), newline)

	var b strings.Builder
	if err := html.Table(gomponents.Group(sections)).Render(&b); err != nil {
		return "", fmt.Errorf("render html table: %w", err)
	}
	return b.String(), nil
}

// htmlRow pads cells to the column width like the text styles do.
func htmlRow(cell func(...gomponents.Node) gomponents.Node, values []string, t *table) gomponents.Node {
	nodes := make([]gomponents.Node, len(values))
	for i, v := range values {
		v = alignCell(v, t.widths[i], t.aligns[i])
		content := gomponents.Text(v)
		if strings.TrimSpace(v) == domain.BlobPlaceholder {
			content = gomponents.Raw(v)
		}
		if t.aligns[i] == alignRight {
			nodes[i] = cell(html.StyleAttr("text-align: right;"), content)
		} else {
			nodes[i] = cell(content)
		}
	}
	return html.Tr(gomponents.Group(nodes))
}
