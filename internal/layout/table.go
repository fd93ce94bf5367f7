package layout

import (
	"strings"

	"github.com/kk-code-lab/mdview/internal/markdown"
	"github.com/kk-code-lab/mdview/internal/textutil"
)

const (
	minColumnWidth = 3
	cellEllipsis   = "…"
)

type tableBorders struct {
	topLeft, topSep, topRight          string
	midLeft, midSep, midRight          string
	bottomLeft, bottomSep, bottomRight string
}

func defaultTableBorders() tableBorders {
	return tableBorders{
		topLeft:     "┌",
		topSep:      "┬",
		topRight:    "┐",
		midLeft:     "├",
		midSep:      "┼",
		midRight:    "┤",
		bottomLeft:  "└",
		bottomSep:   "┴",
		bottomRight: "┘",
	}
}

type tableCell struct {
	lines []cellLine
}

type cellLine struct {
	segments Line
	width    int
}

func renderTable(t markdown.Table, opts Options) []Line {
	if len(t.Headers) == 0 {
		return nil
	}

	header := make([]tableCell, len(t.Headers))
	for i, text := range t.Headers {
		header[i] = makeTableCell(text, StyleStrong, opts.tabWidth())
	}
	rows := make([][]tableCell, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = make([]tableCell, len(t.Headers))
		for j := range t.Headers {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			rows[i][j] = makeTableCell(text, StylePlain, opts.tabWidth())
		}
	}

	widths := clampColumnWidths(computeColumnWidths(header, rows), opts.wrapWidth())
	header = wrapCells(header, widths, opts.TableMaxLinesPerCell)
	for i := range rows {
		rows[i] = wrapCells(rows[i], widths, opts.TableMaxLinesPerCell)
	}

	borders := defaultTableBorders()
	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w+2)
	}

	var lines []Line
	lines = append(lines, borderLine(rules, borders.topLeft, borders.topSep, borders.topRight))
	lines = append(lines, tableRowLines(header, widths, t.Alignments)...)
	lines = append(lines, borderLine(rules, borders.midLeft, borders.midSep, borders.midRight))
	for _, row := range rows {
		lines = append(lines, tableRowLines(row, widths, t.Alignments)...)
	}
	lines = append(lines, borderLine(rules, borders.bottomLeft, borders.bottomSep, borders.bottomRight))
	return lines
}

func borderLine(columns []string, left, sep, right string) Line {
	return Line{{Text: left + strings.Join(columns, sep) + right, Style: StyleBorder}}
}

func makeTableCell(text string, base Style, tabWidth int) tableCell {
	segs := inlineSegments(textutil.ExpandTabs(text, tabWidth), base)
	return tableCell{lines: []cellLine{{segments: segs, width: segs.Width()}}}
}

func computeColumnWidths(header []tableCell, rows [][]tableCell) []int {
	widths := make([]int, len(header))
	update := func(cell tableCell, idx int) {
		for _, line := range cell.lines {
			if line.width > widths[idx] {
				widths[idx] = line.width
			}
		}
	}
	for i, cell := range header {
		update(cell, i)
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) {
				update(row[i], i)
			}
		}
	}
	return widths
}

// clampColumnWidths narrows the widest column one step at a time until the
// drawn table fits maxWidth. Columns shrink to minColumnWidth first and then,
// on terminals too narrow for that, down to one column each. A table whose
// borders alone exceed maxWidth stays wider than maxWidth.
func clampColumnWidths(widths []int, maxWidth int) []int {
	if maxWidth <= 0 || len(widths) == 0 {
		return widths
	}
	total := tableWidth(widths)
	for _, floor := range []int{minColumnWidth, 1} {
		for total > maxWidth {
			idx := widestColumn(widths, floor)
			if idx == -1 {
				break
			}
			widths[idx]--
			total--
		}
	}
	return widths
}

func widestColumn(widths []int, minWidth int) int {
	maxIdx := -1
	maxVal := minWidth
	for i, w := range widths {
		if w > maxVal {
			maxVal = w
			maxIdx = i
		}
	}
	return maxIdx
}

func tableWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	// two spaces and one border per column, plus the closing border
	return total + len(widths)*3 + 1
}

func wrapCells(cells []tableCell, widths []int, maxLines int) []tableCell {
	out := make([]tableCell, len(cells))
	for i, cell := range cells {
		out[i] = wrapCell(cell, widths[i], maxLines)
	}
	return out
}

func wrapCell(cell tableCell, width, maxLines int) tableCell {
	if width <= 0 {
		width = 1
	}
	var wrapped []cellLine
	for _, line := range cell.lines {
		for _, row := range wrapGraphemes(line.segments, width) {
			wrapped = append(wrapped, cellLine{segments: row, width: row.Width()})
		}
	}
	if len(wrapped) == 0 {
		wrapped = []cellLine{{}}
	}
	if maxLines > 0 && len(wrapped) > maxLines {
		wrapped = wrapped[:maxLines]
		last := truncateLine(wrapped[maxLines-1].segments, width, cellEllipsis)
		wrapped[maxLines-1] = cellLine{segments: last, width: last.Width()}
	}
	return tableCell{lines: wrapped}
}

func tableRowLines(cells []tableCell, widths []int, align []markdown.Alignment) []Line {
	height := 1
	for _, cell := range cells {
		if len(cell.lines) > height {
			height = len(cell.lines)
		}
	}
	lines := make([]Line, 0, height)
	for i := 0; i < height; i++ {
		line := Line{{Text: "│ ", Style: StyleBorder}}
		for col, cell := range cells {
			var content cellLine
			if i < len(cell.lines) {
				content = cell.lines[i]
			}
			line = append(line, alignCell(content, widths[col], alignAt(col, align))...)
			sep := " │ "
			if col == len(cells)-1 {
				sep = " │"
			}
			line = append(line, Segment{Text: sep, Style: StyleBorder})
		}
		lines = append(lines, line)
	}
	return lines
}

func alignCell(line cellLine, width int, alignment markdown.Alignment) Line {
	space := width - line.width
	if space < 0 {
		space = 0
	}
	left, right := 0, space
	switch alignment {
	case markdown.AlignCenter:
		left = space / 2
		right = space - left
	case markdown.AlignRight:
		left = space
		right = 0
	}

	out := make(Line, 0, len(line.segments)+2)
	if left > 0 {
		out = append(out, Segment{Text: strings.Repeat(" ", left), Style: StylePlain})
	}
	out = append(out, line.segments...)
	if right > 0 {
		out = append(out, Segment{Text: strings.Repeat(" ", right), Style: StylePlain})
	}
	return out
}

func alignAt(idx int, align []markdown.Alignment) markdown.Alignment {
	if idx < len(align) {
		return align[idx]
	}
	return markdown.AlignLeft
}
