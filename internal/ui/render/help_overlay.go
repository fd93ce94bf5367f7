package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdview/internal/textutil"
)

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

func buildHelpOverlayLines() []string {
	sections := []helpOverlaySection{
		{
			title: "Scrolling",
			entries: []helpOverlayEntry{
				{keys: "↑/↓ or k/j", desc: "Scroll one line"},
				{keys: "PgUp/PgDn", desc: "Scroll one page (also b / space)"},
				{keys: "g/G", desc: "Jump to top / end (also Home/End)"},
				{keys: "←/→ or h/l", desc: "Pan when wrapping is off"},
			},
		},
		{
			title: "Document",
			entries: []helpOverlayEntry{
				{keys: "r", desc: "Reload from disk"},
				{keys: "w", desc: "Toggle word wrap"},
				{keys: "m", desc: "Toggle bookmark"},
				{keys: "y", desc: "Yank path to clipboard"},
				{keys: "e", desc: "Open in external editor ($EDITOR)"},
			},
		},
		{
			title: "Exit",
			entries: []helpOverlayEntry{
				{keys: "q or Esc", desc: "Quit"},
				{keys: "Ctrl+C", desc: "Quit immediately"},
				{keys: "Ctrl+Z", desc: "Suspend to shell"},
				{keys: "?", desc: "Close this help"},
			},
		},
	}

	lines := make([]string, 0, 24)
	for i, section := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			lines = append(lines, formatHelpOverlayEntry(entry))
		}
	}
	return lines
}

func formatHelpOverlayEntry(entry helpOverlayEntry) string {
	key := textutil.SanitizeTerminalText(entry.keys)
	desc := textutil.SanitizeTerminalText(entry.desc)
	return fmt.Sprintf("  %-14s %s", key, desc)
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(0, y, w, baseStyle)
	}

	title := " Help "
	headerStyle := baseStyle.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	titleStart := 0
	if tw := textWidth(title); w > tw {
		titleStart = (w - tw) / 2
	}
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	maxRow := h - 1
	for _, line := range buildHelpOverlayLines() {
		if row >= maxRow {
			break
		}
		text := truncateRight(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 0 {
		r.drawTextLine(0, h-1, w, truncateRight("? toggle · Esc/q close", w), headerStyle)
	}
}
