package tableformat

import "strings"

var (
	plainRow  = row{"", "  ", ""}.build
	pipedRow  = row{"|", "|", "|"}.build
	boxRow    = row{"│", "│", "│"}.build
	doubleRow = row{"║", "║", "║"}.build

	asciiRule  = line{"+", "-", "+", "+"}.build
	asciiThick = line{"+", "=", "+", "+"}.build

	boxTop    = line{"┌", "─", "┬", "┐"}.build
	boxMiddle = line{"├", "─", "┼", "┤"}.build
	boxBottom = line{"└", "─", "┴", "┘"}.build

	doubleTop    = line{"╔", "═", "╦", "╗"}.build
	doubleMiddle = line{"╠", "═", "╬", "╣"}.build
	doubleBottom = line{"╚", "═", "╩", "╝"}.build

	fancyTop    = line{"╒", "═", "╤", "╕"}.build
	fancyMiddle = line{"╞", "═", "╪", "╡"}.build
	fancyBottom = line{"╘", "═", "╧", "╛"}.build
)

// styles covers every Format except HTML, which is rendered as markup.
var styles = map[Format]*style{
	Plain: {header: plainRow, data: plainRow},
	Simple: {
		above:       line{"", "-", "  ", ""}.build,
		belowHeader: line{"", "-", "  ", ""}.build,
		below:       line{"", "-", "  ", ""}.build,
		header:      plainRow, data: plainRow,
		hideAbove: true, hideBelow: true,
	},
	Grid: {
		above: asciiRule, belowHeader: asciiThick, between: asciiRule, below: asciiRule,
		header: pipedRow, data: pipedRow, padding: 1,
	},
	Outline: {
		above: asciiRule, belowHeader: asciiThick, below: asciiRule,
		header: pipedRow, data: pipedRow, padding: 1,
	},
	SimpleGrid: {
		above: boxTop, belowHeader: boxMiddle, between: boxMiddle, below: boxBottom,
		header: boxRow, data: boxRow, padding: 1,
	},
	SimpleOutline: {
		above: boxTop, belowHeader: boxMiddle, below: boxBottom,
		header: boxRow, data: boxRow, padding: 1,
	},
	DoubleGrid: {
		above: doubleTop, belowHeader: doubleMiddle, between: doubleMiddle, below: doubleBottom,
		header: doubleRow, data: doubleRow, padding: 1,
	},
	DoubleOutline: {
		above: doubleTop, belowHeader: doubleMiddle, below: doubleBottom,
		header: doubleRow, data: doubleRow, padding: 1,
	},
	FancyGrid: {
		above: fancyTop, belowHeader: fancyMiddle, between: boxMiddle, below: fancyBottom,
		header: boxRow, data: boxRow, padding: 1,
	},
	FancyOutline: {
		above: fancyTop, belowHeader: fancyMiddle, below: fancyBottom,
		header: boxRow, data: boxRow, padding: 1,
	},
	Github: {
		above: line{"|", "-", "|", "|"}.build, belowHeader: line{"|", "-", "|", "|"}.build,
		header: pipedRow, data: pipedRow, padding: 1,
		hideAbove: true,
	},
	Pipe: {
		above: pipeRule, belowHeader: pipeRule,
		header: pipedRow, data: pipedRow, padding: 1,
		hideAbove: true,
	},
	Orgtbl: {
		belowHeader: line{"|", "-", "+", "|"}.build,
		header:      pipedRow, data: pipedRow, padding: 1,
	},
	Psql: {
		above: asciiRule, belowHeader: line{"|", "-", "+", "|"}.build, below: asciiRule,
		header: pipedRow, data: pipedRow, padding: 1,
	},
	Presto: {
		belowHeader: line{"", "-", "+", ""}.build,
		header:      row{"", "|", ""}.build, data: row{"", "|", ""}.build, padding: 1,
	},
	Pretty: {
		above: asciiRule, belowHeader: asciiRule, below: asciiRule,
		header: pipedRow, data: pipedRow, padding: 1,
		center: true,
	},
	Rst: {
		above:       line{"", "=", "  ", ""}.build,
		belowHeader: line{"", "=", "  ", ""}.build,
		below:       line{"", "=", "  ", ""}.build,
		header:      plainRow, data: plainRow,
	},
	Mediawiki: {
		above:       line{`{| class="wikitable" style="text-align: left;"`, "", "", "\n|+ <!-- caption -->\n|-"}.build,
		belowHeader: line{"|-", "", "", ""}.build,
		between:     line{"|-", "", "", ""}.build,
		below:       line{"|}", "", "", ""}.build,
		header:      mediawikiRow("!"), data: mediawikiRow("|"),
	},
	Moinmoin: {
		header: moinRow("'''"), data: moinRow(""), padding: 1,
	},
	Textile: {
		header: row{"|_. ", "|_.", "|"}.build, data: textileRow, padding: 1,
	},
	Latex: {
		above:       latexBegin,
		belowHeader: line{`\hline`, "", "", ""}.build,
		below:       line{"\\hline\n\\end{tabular}", "", "", ""}.build,
		header:      row{"", "&", `\\`}.build, data: row{"", "&", `\\`}.build, padding: 1,
		escape: latexEscaper.Replace,
	},
}

// pipeRule marks column alignment with colons.
func pipeRule(widths []int, aligns []align) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		switch aligns[i] {
		case alignRight:
			parts[i] = strings.Repeat("-", w-1) + ":"
		case alignCenter:
			parts[i] = ":" + strings.Repeat("-", max(w-2, 0)) + ":"
		default:
			parts[i] = ":" + strings.Repeat("-", w-1)
		}
	}
	return "|" + strings.Join(parts, "|") + "|"
}

var mediawikiAligns = map[align]string{
	alignRight:  `style="text-align: right;"| `,
	alignCenter: `style="text-align: center;"| `,
}

func mediawikiRow(sep string) rowFunc {
	return func(cells []string, _ []int, aligns []align) string {
		values := make([]string, len(cells))
		for i, c := range cells {
			values[i] = " " + mediawikiAligns[aligns[i]] + c + " "
		}
		return rstrip(sep + strings.Join(values, sep+sep))
	}
}

var moinAligns = map[align]string{
	alignRight:  `<style="text-align: right;">`,
	alignCenter: `<style="text-align: center;">`,
}

func moinRow(emphasis string) rowFunc {
	return func(cells []string, _ []int, aligns []align) string {
		var b strings.Builder
		for i, c := range cells {
			b.WriteString("||" + moinAligns[aligns[i]] + " " + emphasis + c + emphasis + " ")
		}
		b.WriteString("||")
		return b.String()
	}
}

var textileAligns = map[align]string{
	alignLeft:   "<.",
	alignRight:  ">.",
	alignCenter: "=.",
}

func textileRow(cells []string, _ []int, aligns []align) string {
	values := make([]string, len(cells))
	for i, c := range cells {
		if i == 0 {
			c += " "
		}
		values[i] = textileAligns[aligns[i]] + c
	}
	return "|" + strings.Join(values, "|") + "|"
}

var latexAligns = map[align]string{
	alignLeft:   "l",
	alignRight:  "r",
	alignCenter: "c",
}

func latexBegin(_ []int, aligns []align) string {
	var spec strings.Builder
	for _, a := range aligns {
		spec.WriteString(latexAligns[a])
	}
	return `\begin{tabular}{` + spec.String() + "}\n" + `\hline`
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"^", `\^{}`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"<", `\ensuremath{<}`,
	">", `\ensuremath{>}`,
)
