package markdown

import "strings"

const (
	minTableColumns   = 2
	minDelimiterWidth = 3
)

// TryParseTable attempts to read a table whose header sits at lines[start].
// On success it returns the table and the index of the first line that was
// not consumed. A header and delimiter without any body row is rejected so
// that two lines of pipe-separated text stay ordinary text.
func TryParseTable(lines []string, start int) (Table, int, bool) {
	if start < 0 || start+1 >= len(lines) {
		return Table{}, start, false
	}

	headers, ok := splitTableRow(lines[start])
	if !ok || len(headers) == 0 {
		return Table{}, start, false
	}
	delimiters, ok := splitTableRow(lines[start+1])
	if !ok {
		return Table{}, start, false
	}
	alignments, ok := parseDelimiterRow(delimiters)
	if !ok {
		return Table{}, start, false
	}
	if len(headers) != len(alignments) || len(headers) < minTableColumns {
		return Table{}, start, false
	}

	var rows [][]string
	i := start + 2
	for i < len(lines) {
		line := lines[i]
		if isBlankLine(line) {
			break
		}
		cells, ok := splitTableRow(line)
		if !ok || len(cells) != len(headers) {
			break
		}
		rows = append(rows, cells)
		i++
	}
	if len(rows) == 0 {
		return Table{}, start, false
	}

	return Table{
		Headers:    headers,
		Alignments: alignments,
		Rows:       rows,
	}, i, true
}

// parseDelimiterRow maps each delimiter cell to its column alignment. Every
// cell is dashes with optional colons on either side, at least three
// characters long, so `:-:` and `---` both qualify.
func parseDelimiterRow(cells []string) ([]Alignment, bool) {
	if len(cells) == 0 {
		return nil, false
	}
	align := make([]Alignment, len(cells))
	for i, cell := range cells {
		if len(cell) < minDelimiterWidth {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		if left {
			cell = cell[1:]
		}
		right := strings.HasSuffix(cell, ":")
		if right {
			cell = cell[:len(cell)-1]
		}
		if !allBytes(cell, '-') {
			return nil, false
		}
		switch {
		case left && right:
			align[i] = AlignCenter
		case right:
			align[i] = AlignRight
		default:
			align[i] = AlignLeft
		}
	}
	return align, true
}

// splitTableRow splits a row on unescaped pipes and trims every cell. The
// empty cells produced by a leading or trailing outer pipe are dropped. It
// reports false when the line has no separator at all.
func splitTableRow(line string) ([]string, bool) {
	parts, separated := splitPipes(strings.TrimSpace(line))
	if !separated {
		return nil, false
	}
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, true
}

// splitPipes cuts line at every '|' not preceded by a backslash. The
// sequence `\|` decodes to a literal pipe; every other byte is kept as is.
func splitPipes(line string) ([]string, bool) {
	var parts []string
	var buf strings.Builder
	separated := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '\\' && i+1 < len(line) && line[i+1] == '|':
			buf.WriteByte('|')
			i++
		case ch == '|':
			parts = append(parts, buf.String())
			buf.Reset()
			separated = true
		default:
			buf.WriteByte(ch)
		}
	}
	parts = append(parts, buf.String())
	return parts, separated
}
