package textutil

import "strings"

// Bidi and zero-width runes are shown as labels so a document cannot
// reorder or hide what the viewer displays.
var formattingRuneLabels = map[rune]string{
	0x200B: "⟪ZWSP⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// SanitizeTerminalText makes document text safe to draw: control runes
// become '?', line breaks and tabs become spaces and bidi controls are
// labeled.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if needsSanitizing(r) {
			return sanitize(text)
		}
	}
	return text
}

func needsSanitizing(r rune) bool {
	if _, ok := formattingRuneLabels[r]; ok {
		return true
	}
	return r < 0x20 || r == 0x7f
}

func sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		if label, ok := formattingRuneLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
