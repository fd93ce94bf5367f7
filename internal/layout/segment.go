package layout

import (
	"strings"

	"github.com/kk-code-lab/mdview/internal/markdown"
	"github.com/kk-code-lab/mdview/internal/textutil"
)

// Style describes the semantic role of a segment. Frontends map it to
// colors or attributes.
type Style int

const (
	StylePlain Style = iota
	StyleHeading
	StyleStrong
	StyleCode
	StyleCodeBlock
	StyleQuote
	StyleBullet
	StyleRule
	StyleBorder
)

// Segment is a chunk of text with an associated style.
type Segment struct {
	Text  string
	Style Style
}

// Line is one output row.
type Line []Segment

// String joins the segment texts.
func (l Line) String() string {
	if len(l) == 0 {
		return ""
	}
	total := 0
	for _, seg := range l {
		total += len(seg.Text)
	}
	buf := make([]byte, 0, total)
	for _, seg := range l {
		buf = append(buf, seg.Text...)
	}
	return string(buf)
}

// Width is the display width of the line in terminal columns.
func (l Line) Width() int {
	return textutil.DisplayWidth(l.String())
}

// appendSegment adds seg to line, merging it into the last segment when
// both share a style.
func appendSegment(line Line, seg Segment) Line {
	if seg.Text == "" {
		return line
	}
	if n := len(line); n > 0 && line[n-1].Style == seg.Style {
		line[n-1].Text += seg.Text
		return line
	}
	return append(line, seg)
}

// inlineSegments styles backtick code spans inside text. An unterminated
// span keeps its backtick and the base style.
func inlineSegments(text string, base Style) Line {
	var line Line
	for _, span := range markdown.SplitCodeSpans(text) {
		switch span.Kind {
		case markdown.SpanCode:
			line = appendSegment(line, Segment{Text: span.Text, Style: StyleCode})
		case markdown.SpanUnterminated:
			line = appendSegment(line, Segment{Text: "`" + span.Text, Style: base})
		default:
			line = appendSegment(line, Segment{Text: span.Text, Style: base})
		}
	}
	return line
}

func trimTrailingSpace(line Line) Line {
	for len(line) > 0 {
		last := &line[len(line)-1]
		last.Text = strings.TrimRight(last.Text, " ")
		if last.Text != "" {
			break
		}
		line = line[:len(line)-1]
	}
	return line
}
