package layout

import (
	"strings"

	"github.com/kk-code-lab/mdview/internal/textutil"
	"github.com/rivo/uniseg"
)

type word struct {
	seg   Segment
	width int
	space bool
}

func splitWords(line Line) []word {
	var words []word
	for _, seg := range line {
		text := seg.Text
		for text != "" {
			space := text[0] == ' '
			end := 1
			for end < len(text) && (text[end] == ' ') == space {
				end++
			}
			piece := text[:end]
			words = append(words, word{
				seg:   Segment{Text: piece, Style: seg.Style},
				width: textutil.DisplayWidth(piece),
				space: space,
			})
			text = text[end:]
		}
	}
	return words
}

// wrapWords breaks line at spaces so that no row exceeds width. Words wider
// than width are split between grapheme clusters. Zero width disables
// wrapping.
func wrapWords(line Line, width int) []Line {
	if width <= 0 {
		return []Line{line}
	}

	var lines []Line
	var current Line
	currentWidth := 0
	emit := func() {
		lines = append(lines, trimTrailingSpace(current))
		current = nil
		currentWidth = 0
	}

	for _, w := range splitWords(line) {
		if w.space {
			if currentWidth == 0 {
				continue
			}
			if currentWidth+w.width >= width {
				emit()
				continue
			}
			current = appendSegment(current, w.seg)
			currentWidth += w.width
			continue
		}
		if currentWidth > 0 && currentWidth+w.width > width {
			emit()
		}
		if w.width > width {
			pieces := wrapGraphemes(Line{w.seg}, width)
			lines = append(lines, pieces[:len(pieces)-1]...)
			last := pieces[len(pieces)-1]
			current = append(current, last...)
			currentWidth = last.Width()
			continue
		}
		current = appendSegment(current, w.seg)
		currentWidth += w.width
	}
	if len(current) > 0 || len(lines) == 0 {
		emit()
	}
	return lines
}

// wrapGraphemes cuts segments into rows of at most width columns without
// regard to word boundaries. Clusters wider than width are dropped.
func wrapGraphemes(segments Line, width int) []Line {
	if width <= 0 {
		return []Line{segments}
	}
	var lines []Line
	var current Line
	currentWidth := 0

	flush := func() {
		lines = append(lines, current)
		current = nil
		currentWidth = 0
	}

	for _, seg := range segments {
		if seg.Text == "" {
			continue
		}
		var buf strings.Builder
		g := uniseg.NewGraphemes(seg.Text)
		for g.Next() {
			cluster := g.Str()
			w := textutil.ClusterWidth(cluster)
			if currentWidth > 0 && currentWidth+w > width {
				current = appendSegment(current, Segment{Text: buf.String(), Style: seg.Style})
				buf.Reset()
				flush()
			}
			if w > width {
				continue
			}
			buf.WriteString(cluster)
			currentWidth += w
			if currentWidth == width {
				current = appendSegment(current, Segment{Text: buf.String(), Style: seg.Style})
				buf.Reset()
				flush()
			}
		}
		if buf.Len() > 0 {
			current = appendSegment(current, Segment{Text: buf.String(), Style: seg.Style})
		}
	}
	if len(current) > 0 {
		flush()
	}
	if len(lines) == 0 {
		lines = append(lines, Line{})
	}
	return lines
}

// truncateLine shortens line to width columns and appends ellipsis.
func truncateLine(line Line, width int, ellipsis string) Line {
	if width <= 0 {
		return Line{}
	}
	ellWidth := textutil.DisplayWidth(ellipsis)
	if ellWidth >= width {
		return Line{{Text: ellipsis, Style: StylePlain}}
	}
	target := width - ellWidth
	var out Line
	curWidth := 0
	full := false
	for _, seg := range line {
		if full {
			break
		}
		var buf strings.Builder
		g := uniseg.NewGraphemes(seg.Text)
		for g.Next() {
			cluster := g.Str()
			w := textutil.ClusterWidth(cluster)
			if curWidth+w > target {
				full = true
				break
			}
			buf.WriteString(cluster)
			curWidth += w
		}
		out = appendSegment(out, Segment{Text: buf.String(), Style: seg.Style})
	}
	return appendSegment(out, Segment{Text: ellipsis, Style: StylePlain})
}
