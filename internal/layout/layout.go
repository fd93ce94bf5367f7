package layout

import (
	"strconv"
	"strings"

	"github.com/kk-code-lab/mdview/internal/markdown"
	"github.com/kk-code-lab/mdview/internal/textutil"
)

const (
	codeIndent       = "    "
	quotePrefix      = "│ "
	defaultRuleWidth = 40
)

var bulletSymbols = []string{"•", "◦", "▪"}

// Options control how blocks are laid out.
type Options struct {
	// Width is the available width in columns. Zero means unlimited.
	Width int
	// Wrap enables word wrapping of prose and clamping of tables to Width.
	Wrap bool
	// TabWidth is used when expanding tabs in code and table cells.
	TabWidth int
	// TableMaxLinesPerCell limits wrapped lines per cell. Zero means unlimited.
	TableMaxLinesPerCell int
}

func (o Options) wrapWidth() int {
	if !o.Wrap || o.Width <= 0 {
		return 0
	}
	return o.Width
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return textutil.DefaultTabWidth
	}
	return o.TabWidth
}

// Render lays blocks out as styled terminal lines, with a blank line
// between consecutive blocks.
func Render(blocks []markdown.Block, opts Options) []Line {
	var lines []Line
	for _, block := range blocks {
		rendered := renderBlock(block, opts)
		if len(rendered) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, nil)
		}
		lines = append(lines, rendered...)
	}
	return lines
}

// PlainText renders blocks and joins the lines without styling.
func PlainText(blocks []markdown.Block, opts Options) string {
	lines := Render(blocks, opts)
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func renderBlock(block markdown.Block, opts Options) []Line {
	switch b := block.(type) {
	case markdown.Heading:
		line := Line{{Text: strings.Repeat("#", b.Level) + " ", Style: StyleHeading}}
		for _, seg := range inlineSegments(b.Text, StyleHeading) {
			line = appendSegment(line, seg)
		}
		return wrapWords(line, opts.wrapWidth())
	case markdown.Paragraph:
		return wrapWords(inlineSegments(b.Text, StylePlain), opts.wrapWidth())
	case markdown.List:
		return renderItems(b.Items, false, opts)
	case markdown.OrderedList:
		return renderItems(b.Items, true, opts)
	case markdown.Blockquote:
		return renderQuote(b, opts)
	case markdown.Rule:
		width := opts.wrapWidth()
		if width == 0 {
			width = defaultRuleWidth
		}
		return []Line{{{Text: strings.Repeat("─", width), Style: StyleRule}}}
	case markdown.Code:
		return renderCode(b, opts)
	case markdown.Table:
		return renderTable(b, opts)
	default:
		return nil
	}
}

func renderItems(items []markdown.ListItem, ordered bool, opts Options) []Line {
	var lines []Line
	for idx, item := range items {
		pad := strings.Repeat("  ", item.Indent)
		marker := itemMarker(item, idx, ordered)
		prefixWidth := textutil.DisplayWidth(pad+marker) + 1

		width := opts.wrapWidth()
		if width > 0 {
			width -= prefixWidth
			if width < 1 {
				width = 1
			}
		}
		body := wrapWords(inlineSegments(item.Text, StylePlain), width)
		for i, row := range body {
			var line Line
			if i == 0 {
				line = Line{
					{Text: pad, Style: StylePlain},
					{Text: marker, Style: StyleBullet},
					{Text: " ", Style: StylePlain},
				}
				if pad == "" {
					line = line[1:]
				}
			} else {
				line = Line{{Text: strings.Repeat(" ", prefixWidth), Style: StylePlain}}
			}
			for _, seg := range row {
				line = appendSegment(line, seg)
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func itemMarker(item markdown.ListItem, idx int, ordered bool) string {
	if item.Checkbox != nil {
		if *item.Checkbox {
			return "☑"
		}
		return "☐"
	}
	if ordered {
		n := idx + 1
		if item.Order != nil {
			n = *item.Order
		}
		return strconv.Itoa(n) + "."
	}
	return bulletSymbols[item.Indent%len(bulletSymbols)]
}

func renderQuote(q markdown.Blockquote, opts Options) []Line {
	width := opts.wrapWidth()
	if width > 0 {
		width -= textutil.DisplayWidth(quotePrefix)
		if width < 1 {
			width = 1
		}
	}
	var lines []Line
	for _, text := range strings.Split(q.Text, "\n") {
		for _, row := range wrapWords(inlineSegments(text, StyleQuote), width) {
			line := Line{{Text: quotePrefix, Style: StyleBorder}}
			for _, seg := range row {
				line = appendSegment(line, seg)
			}
			lines = append(lines, trimTrailingSpace(line))
		}
	}
	return lines
}

func renderCode(c markdown.Code, opts Options) []Line {
	var lines []Line
	if c.Info != "" {
		lines = append(lines, Line{{Text: codeIndent + "[" + c.Info + "]", Style: StyleCode}})
	}
	for _, text := range strings.Split(c.Text, "\n") {
		expanded := textutil.ExpandTabs(text, opts.tabWidth())
		lines = append(lines, Line{{Text: codeIndent + expanded, Style: StyleCodeBlock}})
	}
	return lines
}
