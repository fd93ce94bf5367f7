package markdown

import (
	"strconv"
	"strings"
	"testing"
	"unicode"

	"github.com/google/go-cmp/cmp"
)

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }

func TestParseHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{"atx level one", "# Title", []Block{Heading{Level: 1, Text: "Title"}}},
		{"atx level six", "###### Six", []Block{Heading{Level: 6, Text: "Six"}}},
		{"seven hashes is text", "####### Too Deep", []Block{Paragraph{Text: "####### Too Deep"}}},
		{"missing space is text", "#NoSpace", []Block{Paragraph{Text: "#NoSpace"}}},
		{"hash without text", "# ", []Block{Paragraph{Text: "#"}}},
		{"indented atx", "   ## Indented  ", []Block{Heading{Level: 2, Text: "Indented"}}},
		{"setext equals", "Title\n=====", []Block{Heading{Level: 1, Text: "Title"}}},
		{"setext dashes", "Title\n---", []Block{Heading{Level: 2, Text: "Title"}}},
		{"short underline is text", "Title\n==", []Block{Paragraph{Text: "Title =="}}},
		{
			"setext flushes previous paragraph",
			"intro\nTitle\n===",
			[]Block{Paragraph{Text: "intro"}, Heading{Level: 1, Text: "Title"}},
		},
		{
			"mixed underline is not setext",
			"Title\n=-=",
			[]Block{Paragraph{Text: "Title =-="}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseParagraphsCollapseSoftWraps(t *testing.T) {
	input := "line one\n  line two  \nline three\n\nsecond paragraph"
	want := []Block{
		Paragraph{Text: "line one line two line three"},
		Paragraph{Text: "second paragraph"},
	}
	if diff := cmp.Diff(want, Parse(input)); diff != "" {
		t.Fatalf("paragraph mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n\t\n"} {
		if got := Parse(input); len(got) != 0 {
			t.Fatalf("Parse(%q) = %v, want no blocks", input, got)
		}
	}
}

func TestParseHandlesCRLF(t *testing.T) {
	want := []Block{
		Heading{Level: 1, Text: "Title"},
		Paragraph{Text: "body text"},
	}
	if diff := cmp.Diff(want, Parse("# Title\r\nbody\r\ntext\r\n")); diff != "" {
		t.Fatalf("CRLF mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnorderedLists(t *testing.T) {
	input := strings.Join([]string{
		"- one",
		"* two",
		"+ three",
		"- [ ] todo",
		"- [x] done",
		"- [X] Done too",
		"- [ ]",
	}, "\n")
	want := []Block{List{Items: []ListItem{
		{Text: "one"},
		{Text: "two"},
		{Text: "three"},
		{Text: "todo", Checkbox: boolPtr(false)},
		{Text: "done", Checkbox: boolPtr(true)},
		{Text: "Done too", Checkbox: boolPtr(true)},
		{Text: "[ ]"},
	}}}
	if diff := cmp.Diff(want, Parse(input)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListIndentation(t *testing.T) {
	tests := []struct {
		line   string
		indent int
	}{
		{"- zero", 0},
		{" - still zero", 0},
		{"  - one", 1},
		{"    - four spaces", 2},
		{"\t- one tab", 2},
		{"\t  - tab and two spaces", 3},
		{"    1. ordered", 2},
	}
	for _, tt := range tests {
		blocks := Parse(tt.line)
		if len(blocks) != 1 {
			t.Fatalf("Parse(%q) produced %d blocks", tt.line, len(blocks))
		}
		var items []ListItem
		switch b := blocks[0].(type) {
		case List:
			items = b.Items
		case OrderedList:
			items = b.Items
		default:
			t.Fatalf("Parse(%q) produced %T, want a list", tt.line, blocks[0])
		}
		if got := items[0].Indent; got != tt.indent {
			t.Fatalf("indent for %q = %d, want %d", tt.line, got, tt.indent)
		}
	}
}

func TestParseOrderedListKeepsLiteralNumbers(t *testing.T) {
	want := []Block{OrderedList{Items: []ListItem{
		{Text: "first", Order: intPtr(1)},
		{Text: "third", Order: intPtr(3)},
		{Text: "tenth", Order: intPtr(10)},
	}}}
	if diff := cmp.Diff(want, Parse("1. first\n3. third\n10. tenth")); diff != "" {
		t.Fatalf("ordered list mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListTransitions(t *testing.T) {
	input := "intro\n- a\n- b\n1. c\n- d\n> quote\n- e\ntext"
	want := []Block{
		Paragraph{Text: "intro"},
		List{Items: []ListItem{{Text: "a"}, {Text: "b"}}},
		OrderedList{Items: []ListItem{{Text: "c", Order: intPtr(1)}}},
		List{Items: []ListItem{{Text: "d"}}},
		Blockquote{Text: "quote"},
		List{Items: []ListItem{{Text: "e"}}},
		Paragraph{Text: "text"},
	}
	if diff := cmp.Diff(want, Parse(input)); diff != "" {
		t.Fatalf("transition mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMalformedMarkersFallBackToParagraph(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-no space", "-no space"},
		{"-", "-"},
		{"1.no space", "1.no space"},
		{"1)", "1)"},
		{"-*-", "-*-"},
		{"--", "--"},
		{"99999999999999999999999. huge", "99999999999999999999999. huge"},
	}
	for _, tt := range tests {
		want := []Block{Paragraph{Text: tt.want}}
		if diff := cmp.Diff(want, Parse(tt.input)); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseBlockquotesKeepLineBreaks(t *testing.T) {
	input := "para\n> first\n>second\n>  third\n>\nafter"
	want := []Block{
		Paragraph{Text: "para"},
		Blockquote{Text: "first\nsecond\n third\n"},
		Paragraph{Text: "after"},
	}
	if diff := cmp.Diff(want, Parse(input)); diff != "" {
		t.Fatalf("blockquote mismatch (-want +got):\n%s", diff)
	}
}

func TestParseThematicBreaks(t *testing.T) {
	for _, input := range []string{"---", "***", "___", "  -----  ", "*****"} {
		want := []Block{Rule{}}
		if diff := cmp.Diff(want, Parse(input)); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}

	want := []Block{Paragraph{Text: "para"}, Rule{}, Paragraph{Text: "next"}}
	if diff := cmp.Diff(want, Parse("para\n\n***\nnext")); diff != "" {
		t.Fatalf("rule between paragraphs mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSetextTakesPriorityOverRule(t *testing.T) {
	want := []Block{Heading{Level: 2, Text: "para"}}
	if diff := cmp.Diff(want, Parse("para\n---")); diff != "" {
		t.Fatalf("setext priority mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFencedCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "keeps blank and marker lines verbatim",
			input: "```go\nfunc main() {\n\n    # not a heading\n}\n```",
			want:  []Block{Code{Text: "func main() {\n\n    # not a heading\n}", Info: "go"}},
		},
		{
			name:  "unterminated fence runs to end of input",
			input: "```\nline1\nline2",
			want:  []Block{Code{Text: "line1\nline2"}},
		},
		{
			name:  "empty fence",
			input: "```\n```",
			want:  []Block{Code{}},
		},
		{
			name:  "fence flushes open runs",
			input: "text\n- item\n```\ncode\n```\nafter",
			want: []Block{
				Paragraph{Text: "text"},
				List{Items: []ListItem{{Text: "item"}}},
				Code{Text: "code"},
				Paragraph{Text: "after"},
			},
		},
		{
			name:  "table syntax inside a fence is code",
			input: "```\n| A | B |\n|---|---|\n| 1 | 2 |\n```",
			want:  []Block{Code{Text: "| A | B |\n|---|---|\n| 1 | 2 |"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Parse(tt.input)); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTableBlock(t *testing.T) {
	input := "| A | B |\n|---|:-:|\n| 1 | 2 |"
	want := []Block{Table{
		Headers:    []string{"A", "B"},
		Alignments: []Alignment{AlignLeft, AlignCenter},
		Rows:       [][]string{{"1", "2"}},
	}}
	if diff := cmp.Diff(want, Parse(input)); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTableWithoutBodyIsParagraph(t *testing.T) {
	want := []Block{Paragraph{Text: "| A | B | |---|---|"}}
	if diff := cmp.Diff(want, Parse("| A | B |\n|---|---|")); diff != "" {
		t.Fatalf("header-only table mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTableStopsAtMismatchedRow(t *testing.T) {
	input := "| A | B |\n|---|---|\n| 1 | 2 |\n| 3 |\nafter"
	want := []Block{
		Table{
			Headers:    []string{"A", "B"},
			Alignments: []Alignment{AlignLeft, AlignLeft},
			Rows:       [][]string{{"1", "2"}},
		},
		Paragraph{Text: "| 3 | after"},
	}
	if diff := cmp.Diff(want, Parse(input)); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	input := sampleDocument()
	first := Parse(input)
	second := Parse(input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parsing the same input twice differed:\n%s", diff)
	}
}

func TestParseAccountsForEveryWord(t *testing.T) {
	inputs := []string{
		sampleDocument(),
		"a\nb\n\nc\n- d\n1. e\n> f\ng\n---\nh\n===\n",
		"| x | y |\n|---|---|\n| p | q |\n| r |\ns",
		"```\nunterminated\n\nfence",
	}
	for _, input := range inputs {
		dump := dumpBlocks(Parse(input))
		for _, field := range strings.Fields(input) {
			word := strings.TrimFunc(field, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
			if word == "" {
				continue
			}
			if !strings.Contains(dump, word) {
				t.Fatalf("word %q from input %q missing from blocks:\n%s", word, input, dump)
			}
		}
	}
}

func sampleDocument() string {
	return strings.Join([]string{
		"Project Title",
		"=============",
		"",
		"Intro paragraph that",
		"wraps over two lines.",
		"",
		"## Tasks",
		"- [ ] write parser",
		"- [x] pick name",
		"  - nested detail",
		"",
		"1. first",
		"2. second",
		"",
		"> quoted",
		"> lines",
		"",
		"| Name | Value |",
		"|:-----|------:|",
		"| `a` | 1 |",
		"| b \\| c | 2 |",
		"",
		"***",
		"",
		"```sh",
		"echo hello",
		"```",
	}, "\n")
}

func dumpBlocks(blocks []Block) string {
	var b strings.Builder
	writeItems := func(items []ListItem) {
		for _, item := range items {
			if item.Order != nil {
				b.WriteString(strconv.Itoa(*item.Order) + " ")
			}
			if item.Checkbox != nil && *item.Checkbox {
				b.WriteString("[x] ")
			}
			b.WriteString(item.Text + "\n")
		}
	}
	for _, block := range blocks {
		b.WriteString(block.Kind().String() + ": ")
		switch v := block.(type) {
		case Heading:
			b.WriteString(v.Text)
		case Paragraph:
			b.WriteString(v.Text)
		case Blockquote:
			b.WriteString(v.Text)
		case Code:
			b.WriteString(v.Info + " " + v.Text)
		case List:
			writeItems(v.Items)
		case OrderedList:
			writeItems(v.Items)
		case Table:
			b.WriteString(strings.Join(v.Headers, " "))
			for _, row := range v.Rows {
				b.WriteString(" " + strings.Join(row, " "))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
