package htmldoc

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/kk-code-lab/mdview/internal/markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const defaultTitle = "Document"

const baseCSS = `body { max-width: 48em; margin: 2em auto; padding: 0 1em; font-family: sans-serif; line-height: 1.5; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.25em 0.5em; }
.a-left { text-align: left; }
.a-center { text-align: center; }
.a-right { text-align: right; }
blockquote { margin-left: 0; padding-left: 1em; border-left: 3px solid #ccc; color: #555; }
li.task { list-style: none; }
`

// maxIndentClass caps the indent-N classes; deeper items share the last one.
const maxIndentClass = 6

// indentCSS gives every indent-N class a left margin proportional to N.
var indentCSS = func() string {
	var b strings.Builder
	for n := 1; n <= maxIndentClass; n++ {
		fmt.Fprintf(&b, ".indent-%d { margin-left: %.1fem; }\n", n, 1.5*float64(n))
	}
	return b.String()
}()

// Options control the exported document.
type Options struct {
	// Title defaults to the first heading.
	Title string
	// Highlight runs fenced code through a syntax highlighter.
	Highlight bool
	// Style names the highlighting style.
	Style string
	// InlineMarkdown renders emphasis and links in prose. When false, prose
	// is escaped with only code spans recognized.
	InlineMarkdown bool
}

type renderer struct {
	opts      Options
	md        goldmark.Markdown
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

func newRenderer(opts Options) *renderer {
	r := &renderer{opts: opts}
	if opts.InlineMarkdown {
		r.md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough, extension.Linkify))
	}
	if opts.Highlight {
		r.formatter = chromahtml.New(chromahtml.WithClasses(true))
		r.style = styles.Get(opts.Style)
	}
	return r
}

// Render builds a standalone HTML5 document from blocks.
func Render(blocks []markdown.Block, opts Options) (string, error) {
	r := newRenderer(opts)

	var body bytes.Buffer
	for _, block := range blocks {
		if err := r.writeBlock(&body, block); err != nil {
			return "", err
		}
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", markdown.EscapeHTML(documentTitle(blocks, opts.Title)))
	out.WriteString("<style>\n")
	out.WriteString(baseCSS)
	out.WriteString(indentCSS)
	if r.formatter != nil {
		if err := r.formatter.WriteCSS(&out, r.style); err != nil {
			return "", fmt.Errorf("write highlight css: %w", err)
		}
	}
	out.WriteString("</style>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")
	return out.String(), nil
}

func documentTitle(blocks []markdown.Block, title string) string {
	if title != "" {
		return title
	}
	for _, block := range blocks {
		if h, ok := block.(markdown.Heading); ok && h.Text != "" {
			return h.Text
		}
	}
	return defaultTitle
}

func (r *renderer) writeBlock(w *bytes.Buffer, block markdown.Block) error {
	switch b := block.(type) {
	case markdown.Heading:
		fmt.Fprintf(w, "<h%d>%s</h%d>\n", b.Level, r.inline(b.Text), b.Level)
	case markdown.Paragraph:
		fmt.Fprintf(w, "<p>%s</p>\n", r.inline(b.Text))
	case markdown.List:
		r.writeList(w, "ul", b.Items)
	case markdown.OrderedList:
		r.writeList(w, "ol", b.Items)
	case markdown.Table:
		w.WriteString(b.HTML())
		w.WriteByte('\n')
	case markdown.Blockquote:
		lines := strings.Split(b.Text, "\n")
		for i, line := range lines {
			lines[i] = r.inline(line)
		}
		fmt.Fprintf(w, "<blockquote>\n<p>%s</p>\n</blockquote>\n", strings.Join(lines, "<br>\n"))
	case markdown.Rule:
		w.WriteString("<hr>\n")
	case markdown.Code:
		return r.writeCode(w, b)
	}
	return nil
}

func (r *renderer) writeList(w *bytes.Buffer, tag string, items []markdown.ListItem) {
	fmt.Fprintf(w, "<%s>\n", tag)
	for _, item := range items {
		var classes []string
		if item.Indent > 0 {
			classes = append(classes, "indent-"+strconv.Itoa(min(item.Indent, maxIndentClass)))
		}
		if item.Checkbox != nil {
			classes = append(classes, "task")
		}
		w.WriteString("<li")
		if len(classes) > 0 {
			fmt.Fprintf(w, ` class="%s"`, strings.Join(classes, " "))
		}
		if item.Order != nil {
			fmt.Fprintf(w, ` value="%d"`, *item.Order)
		}
		w.WriteString(">")
		if item.Checkbox != nil {
			if *item.Checkbox {
				w.WriteString(`<input type="checkbox" disabled checked> `)
			} else {
				w.WriteString(`<input type="checkbox" disabled> `)
			}
		}
		w.WriteString(r.inline(item.Text))
		w.WriteString("</li>\n")
	}
	fmt.Fprintf(w, "</%s>\n", tag)
}

// inline renders prose through goldmark and keeps the result only when it
// is a single paragraph. Anything else would change the block structure
// that was already decided, so the text is escaped instead.
func (r *renderer) inline(text string) string {
	if r.md == nil || text == "" {
		return markdown.RenderCellHTML(text)
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return markdown.RenderCellHTML(text)
	}
	out := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(out, "<p>") || !strings.HasSuffix(out, "</p>") || strings.Count(out, "<p>") != 1 {
		return markdown.RenderCellHTML(text)
	}
	return strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
}

func (r *renderer) writeCode(w io.Writer, c markdown.Code) error {
	lang := codeLanguage(c.Info)
	if r.formatter == nil {
		class := ""
		if lang != "" {
			class = ` class="language-` + markdown.EscapeHTML(lang) + `"`
		}
		_, err := fmt.Fprintf(w, "<pre><code%s>%s</code></pre>\n", class, markdown.EscapeHTML(c.Text))
		return err
	}

	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(c.Text)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, c.Text)
	if err != nil {
		return fmt.Errorf("tokenise code block: %w", err)
	}
	if err := r.formatter.Format(w, r.style, iterator); err != nil {
		return fmt.Errorf("highlight code block: %w", err)
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// codeLanguage takes the first word of a fence info string.
func codeLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
