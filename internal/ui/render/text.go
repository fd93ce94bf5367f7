package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdview/internal/layout"
	"github.com/kk-code-lab/mdview/internal/textutil"
	"github.com/rivo/uniseg"
)

// drawTextLine draws text one grapheme cluster at a time and returns the
// column after the last cell written.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	limit := startX + maxWidth
	g := uniseg.NewGraphemes(textutil.SanitizeTerminalText(text))
	for g.Next() {
		runes := g.Runes()
		width := textutil.ClusterWidth(g.Str())
		if x+width > limit {
			break
		}
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += width
	}
	return x
}

// drawSegments draws a laid-out line, skipping the first offset columns and
// clipping at maxWidth. A wide cluster cut by the offset leaves blanks.
func (r *Renderer) drawSegments(startX, y, maxWidth, offset int, line layout.Line, base tcell.Style) int {
	x := startX
	limit := startX + maxWidth
	column := 0
	for _, seg := range line {
		style := r.styleForSegment(base, seg.Style)
		g := uniseg.NewGraphemes(textutil.SanitizeTerminalText(seg.Text))
		for g.Next() {
			width := textutil.ClusterWidth(g.Str())
			start := column
			column += width
			if column <= offset {
				continue
			}
			if x+width > limit {
				return x
			}
			if start < offset {
				for i := offset; i < column && x < limit; i++ {
					r.screen.SetContent(x, y, ' ', nil, style)
					x++
				}
				continue
			}
			runes := g.Runes()
			r.screen.SetContent(x, y, runes[0], runes[1:], style)
			x += width
		}
	}
	return x
}

func (r *Renderer) fillRow(startX, y, endX int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func textWidth(text string) int {
	return textutil.DisplayWidth(text)
}

func truncateRight(text string, maxWidth int) string {
	return textutil.TruncateToWidth(text, maxWidth)
}

// truncateLeft keeps the end of text, which for paths is the part that
// identifies the file.
func truncateLeft(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if textutil.DisplayWidth(text) <= maxWidth {
		return text
	}
	if maxWidth == 1 {
		return "…"
	}
	var clusters []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	width := 1
	start := len(clusters)
	for start > 0 {
		w := textutil.ClusterWidth(clusters[start-1])
		if width+w > maxWidth {
			break
		}
		width += w
		start--
	}
	out := "…"
	for _, c := range clusters[start:] {
		out += c
	}
	return out
}
