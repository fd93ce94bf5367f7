package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const DefaultTabWidth = 4

const ellipsis = "…"

// DisplayWidth reports how many terminal columns text occupies. Grapheme
// clusters are measured as a unit so emoji sequences count once.
func DisplayWidth(text string) int {
	if isASCII(text) {
		return len(text)
	}
	width := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width += ClusterWidth(g.Str())
	}
	return width
}

// ClusterWidth is the width of a single grapheme cluster, never below one.
func ClusterWidth(cluster string) int {
	w := uniseg.StringWidth(cluster)
	if w < 1 {
		return 1
	}
	return w
}

// RuneWidth is the width tcell will give ru; combining runes report zero.
func RuneWidth(ru rune) int {
	w := runewidth.RuneWidth(ru)
	if w < 0 {
		return 0
	}
	return w
}

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(text string, tabWidth int) string {
	if tabWidth <= 0 || !strings.ContainsRune(text, '\t') {
		return text
	}

	var b strings.Builder
	column := 0
	for _, ru := range text {
		if ru == '\t' {
			spaces := tabWidth - (column % tabWidth)
			b.WriteString(strings.Repeat(" ", spaces))
			column += spaces
			continue
		}
		b.WriteRune(ru)
		w := runewidth.RuneWidth(ru)
		if w < 1 {
			w = 1
		}
		column += w
	}
	return b.String()
}

// TruncateToWidth shortens text to maxWidth columns, ending it with an
// ellipsis when anything was cut.
func TruncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 1 {
		return ellipsis
	}

	available := maxWidth - 1
	var b strings.Builder
	current := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := ClusterWidth(cluster)
		if current+w > available {
			break
		}
		b.WriteString(cluster)
		current += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 || s[i] < 0x20 {
			return false
		}
	}
	return true
}
