package markdown

import "strings"

const listTabWidth = 4

// SplitLines breaks source into lines, keeping empty ones. A trailing '\r'
// is dropped from every line so CRLF documents classify like LF ones.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}

// leadingWidth measures leading whitespace with tabs counted as listTabWidth.
func leadingWidth(line string) int {
	width := 0
	for _, ch := range line {
		switch ch {
		case ' ':
			width++
		case '\t':
			width += listTabWidth
		default:
			return width
		}
	}
	return width
}

func isBullet(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '*'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// allBytes reports whether s is non-empty and made only of target.
func allBytes(s string, target byte) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != target {
			return false
		}
	}
	return true
}
