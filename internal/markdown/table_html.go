package markdown

import "strings"

// HTML renders the table as a <table> with one <thead> row and a <tbody>.
// Every cell carries the alignment class of its column.
func (t Table) HTML() string {
	var b strings.Builder
	b.WriteString("<table>\n<thead>\n<tr>")
	for col := range t.Headers {
		writeCell(&b, "th", t.alignmentAt(col), t.HeaderHTML(col))
	}
	b.WriteString("</tr>\n</thead>\n<tbody>\n")
	for row := range t.Rows {
		b.WriteString("<tr>")
		for col := range t.Headers {
			writeCell(&b, "td", t.alignmentAt(col), t.CellHTML(row, col))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>")
	return b.String()
}

// HeaderHTML returns the rendered fragment of header cell col.
func (t Table) HeaderHTML(col int) string {
	if col < 0 || col >= len(t.Headers) {
		return ""
	}
	return RenderCellHTML(t.Headers[col])
}

// CellHTML returns the rendered fragment of body cell (row, col).
func (t Table) CellHTML(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return RenderCellHTML(t.Rows[row][col])
}

func (t Table) alignmentAt(col int) Alignment {
	if col < len(t.Alignments) {
		return t.Alignments[col]
	}
	return AlignLeft
}

func writeCell(b *strings.Builder, tag string, align Alignment, content string) {
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(` class="`)
	b.WriteString(align.CSSClass())
	b.WriteString(`">`)
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}
