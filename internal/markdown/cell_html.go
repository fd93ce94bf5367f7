package markdown

import "strings"

// SpanKind classifies a run of table cell text.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanCode
	// SpanUnterminated is the tail after a backtick that never closed.
	SpanUnterminated
)

type Span struct {
	Kind SpanKind
	Text string
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes &, <, >, " and '. Nothing else is touched.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// SplitCodeSpans scans text left to right, toggling code mode on every
// backtick. A code span that is still open at the end of the text comes
// back as a SpanUnterminated instead of a SpanCode.
func SplitCodeSpans(text string) []Span {
	var spans []Span
	var buf strings.Builder
	inCode := false
	for i := 0; i < len(text); i++ {
		if text[i] != '`' {
			buf.WriteByte(text[i])
			continue
		}
		if inCode {
			spans = append(spans, Span{Kind: SpanCode, Text: buf.String()})
		} else if buf.Len() > 0 {
			spans = append(spans, Span{Kind: SpanText, Text: buf.String()})
		}
		buf.Reset()
		inCode = !inCode
	}
	switch {
	case inCode:
		spans = append(spans, Span{Kind: SpanUnterminated, Text: buf.String()})
	case buf.Len() > 0:
		spans = append(spans, Span{Kind: SpanText, Text: buf.String()})
	}
	return spans
}

// RenderCellHTML converts raw cell text into an escaped HTML fragment where
// backtick spans become <code> elements. An unterminated span is written as
// a literal backtick followed by its escaped text.
func RenderCellHTML(text string) string {
	var b strings.Builder
	for _, span := range SplitCodeSpans(text) {
		switch span.Kind {
		case SpanCode:
			b.WriteString("<code>")
			b.WriteString(EscapeHTML(span.Text))
			b.WriteString("</code>")
		case SpanUnterminated:
			b.WriteString("&#96;")
			b.WriteString(EscapeHTML(span.Text))
		default:
			b.WriteString(EscapeHTML(span.Text))
		}
	}
	return b.String()
}
