package htmldoc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kk-code-lab/mdview/internal/markdown"
	"golang.org/x/net/html"
)

const sample = `# Report

Some *emphasis* and ` + "`code`" + `.

- [x] shipped
  - nested
3. third
4. fourth

| Name | Qty |
|:-----|----:|
| a | 1 |

> first
> second

---

` + "```go\nfunc main() {}\n```"

func parseDoc(t *testing.T, out string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func render(t *testing.T, src string, opts Options) *html.Node {
	t.Helper()
	out, err := Render(markdown.Parse(src), opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return parseDoc(t, out)
}

func TestRenderDocumentStructure(t *testing.T) {
	doc := render(t, sample, Options{InlineMarkdown: true, Highlight: true, Style: "github"})

	if titles := findAll(doc, "title"); len(titles) != 1 || textOf(titles[0]) != "Report" {
		t.Fatalf("expected title from first heading")
	}
	if h1 := findAll(doc, "h1"); len(h1) != 1 || textOf(h1[0]) != "Report" {
		t.Fatalf("expected one h1")
	}
	if em := findAll(doc, "em"); len(em) != 1 || textOf(em[0]) != "emphasis" {
		t.Fatalf("expected goldmark emphasis, got %d <em>", len(em))
	}
	if hr := findAll(doc, "hr"); len(hr) != 1 {
		t.Fatalf("expected one <hr>, got %d", len(hr))
	}
	if pre := findAll(doc, "pre"); len(pre) != 1 || !strings.Contains(textOf(pre[0]), "func main() {}") {
		t.Fatalf("expected highlighted code block")
	}
}

func TestRenderLists(t *testing.T) {
	doc := render(t, sample, Options{})

	ul := findAll(doc, "ul")
	if len(ul) != 1 {
		t.Fatalf("expected one <ul>, got %d", len(ul))
	}
	items := findAll(ul[0], "li")
	if len(items) != 2 {
		t.Fatalf("expected two unordered items, got %d", len(items))
	}
	inputs := findAll(items[0], "input")
	if len(inputs) != 1 {
		t.Fatalf("expected checkbox input")
	}
	if _, ok := attr(inputs[0], "checked"); !ok {
		t.Fatalf("expected checked checkbox")
	}
	if _, ok := attr(inputs[0], "disabled"); !ok {
		t.Fatalf("expected disabled checkbox")
	}
	if class, _ := attr(items[1], "class"); class != "indent-1" {
		t.Fatalf("nested item class = %q", class)
	}

	var values []string
	for _, li := range findAll(findAll(doc, "ol")[0], "li") {
		v, _ := attr(li, "value")
		values = append(values, v)
	}
	if diff := cmp.Diff([]string{"3", "4"}, values); diff != "" {
		t.Fatalf("ordered values mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderTableAlignment(t *testing.T) {
	doc := render(t, sample, Options{})
	tables := findAll(doc, "table")
	if len(tables) != 1 {
		t.Fatalf("expected one table, got %d", len(tables))
	}
	var classes []string
	for _, cell := range append(findAll(tables[0], "th"), findAll(tables[0], "td")...) {
		c, _ := attr(cell, "class")
		classes = append(classes, c)
	}
	want := []string{"a-left", "a-right", "a-left", "a-right"}
	if diff := cmp.Diff(want, classes); diff != "" {
		t.Fatalf("cell classes mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderBlockquoteLineBreaks(t *testing.T) {
	doc := render(t, sample, Options{})
	quotes := findAll(doc, "blockquote")
	if len(quotes) != 1 {
		t.Fatalf("expected one blockquote")
	}
	if br := findAll(quotes[0], "br"); len(br) != 1 {
		t.Fatalf("expected one <br>, got %d", len(br))
	}
	if got := textOf(quotes[0]); !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Fatalf("blockquote text = %q", got)
	}
}

func TestRenderNeverEmitsRawHTML(t *testing.T) {
	src := "<script>alert(1)</script>\n\n| a | b |\n|---|---|\n| <script> | x |"
	for _, inline := range []bool{true, false} {
		doc := render(t, src, Options{InlineMarkdown: inline})
		// only the <head> style element is expected; no scripts anywhere
		if scripts := findAll(doc, "script"); len(scripts) != 0 {
			t.Fatalf("inline=%v: found %d <script> elements", inline, len(scripts))
		}
	}
}

func TestInlineFallsBackWhenNotSingleParagraph(t *testing.T) {
	r := newRenderer(Options{InlineMarkdown: true})
	if got := r.inline("1) not a list"); got != "1) not a list" {
		t.Fatalf("inline = %q", got)
	}
	if got := r.inline("**bold** `x`"); got != "<strong>bold</strong> <code>x</code>" {
		t.Fatalf("inline = %q", got)
	}

	plain := newRenderer(Options{})
	if got := plain.inline("*a* & `b`"); got != "*a* &amp; <code>b</code>" {
		t.Fatalf("escaped inline = %q", got)
	}
}

func TestRenderPlainCodeBlock(t *testing.T) {
	out, err := Render([]markdown.Block{markdown.Code{Text: "a < b", Info: "python"}}, Options{Title: "T"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `<pre><code class="language-python">a &lt; b</code></pre>`) {
		t.Fatalf("unexpected code block output:\n%s", out)
	}
	if !strings.Contains(out, "<title>T</title>") {
		t.Fatalf("expected explicit title")
	}
}

func TestCodeLanguage(t *testing.T) {
	tests := map[string]string{"": "", "go": "go", "  rust title=x ": "rust"}
	for in, want := range tests {
		if got := codeLanguage(in); got != want {
			t.Fatalf("codeLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderStylesListIndentClasses(t *testing.T) {
	out, err := Render(markdown.Parse("- top\n  - nested\n                - deep"), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, ".indent-1 { margin-left: 1.5em; }") {
		t.Fatalf("expected a margin rule for indent-1, got:\n%s", out)
	}
	if !strings.Contains(out, ".indent-6 { margin-left: 9.0em; }") {
		t.Fatalf("expected a margin rule for indent-6, got:\n%s", out)
	}

	items := findAll(parseDoc(t, out), "li")
	if len(items) != 3 {
		t.Fatalf("expected three items, got %d", len(items))
	}
	if class, _ := attr(items[2], "class"); class != "indent-6" {
		t.Fatalf("deep item class = %q, want indent-6", class)
	}
}
