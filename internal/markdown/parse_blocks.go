package markdown

import (
	"strconv"
	"strings"
)

const (
	fenceMarker        = "```"
	minUnderlineLength = 3
	maxHeadingLevel    = 6
)

// blockParser carries the open runs between lines. At most one of
// paragraph, list, ordered and quote is non-empty at any time.
type blockParser struct {
	blocks []Block

	paragraph []string
	list      []ListItem
	ordered   []ListItem
	quote     []string

	inCodeFence bool
	codeLines   []string
	codeInfo    string
}

// Parse converts a markdown document into its block sequence. It never
// fails: anything that is not recognized ends up as paragraph text.
func Parse(source string) []Block {
	return ParseLines(SplitLines(source))
}

// ParseLines classifies already split lines.
func ParseLines(lines []string) []Block {
	p := &blockParser{}
	for i := 0; i < len(lines); {
		i = p.consume(lines, i)
	}
	p.flushAll()
	p.flushCode()
	return p.blocks
}

// consume classifies lines[i] and returns the index of the next line to look at.
func (p *blockParser) consume(lines []string, i int) int {
	line := lines[i]
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, fenceMarker) {
		p.flushAll()
		if p.inCodeFence {
			p.flushCode()
		} else {
			p.inCodeFence = true
			p.codeInfo = strings.TrimSpace(strings.TrimLeft(trimmed, "`"))
		}
		return i + 1
	}

	if p.inCodeFence {
		p.codeLines = append(p.codeLines, line)
		return i + 1
	}

	if trimmed == "" {
		p.flushAll()
		return i + 1
	}

	if level, ok := setextLevel(lines, i); ok {
		p.flushAll()
		p.emit(Heading{Level: level, Text: trimmed})
		return i + 2
	}

	if tbl, next, ok := TryParseTable(lines, i); ok {
		p.flushAll()
		p.emit(tbl)
		return next
	}

	if level, text, ok := parseATXHeading(trimmed); ok {
		p.flushAll()
		p.emit(Heading{Level: level, Text: text})
		return i + 1
	}

	if item, ok := parseBulletItem(line, trimmed); ok {
		p.flushParagraph()
		p.flushOrderedList()
		p.flushQuote()
		p.list = append(p.list, item)
		return i + 1
	}

	if item, ok := parseOrderedItem(line, trimmed); ok {
		p.flushParagraph()
		p.flushList()
		p.flushQuote()
		p.ordered = append(p.ordered, item)
		return i + 1
	}

	if strings.HasPrefix(trimmed, ">") {
		p.flushParagraph()
		p.flushList()
		p.flushOrderedList()
		p.quote = append(p.quote, strings.TrimPrefix(trimmed[1:], " "))
		return i + 1
	}

	if isThematicBreak(trimmed) {
		p.flushAll()
		p.emit(Rule{})
		return i + 1
	}

	p.flushList()
	p.flushOrderedList()
	p.flushQuote()
	p.paragraph = append(p.paragraph, trimmed)
	return i + 1
}

func (p *blockParser) emit(b Block) {
	p.blocks = append(p.blocks, b)
}

func (p *blockParser) flushParagraph() {
	if len(p.paragraph) == 0 {
		return
	}
	p.emit(Paragraph{Text: strings.Join(p.paragraph, " ")})
	p.paragraph = nil
}

func (p *blockParser) flushList() {
	if len(p.list) == 0 {
		return
	}
	p.emit(List{Items: p.list})
	p.list = nil
}

func (p *blockParser) flushOrderedList() {
	if len(p.ordered) == 0 {
		return
	}
	p.emit(OrderedList{Items: p.ordered})
	p.ordered = nil
}

func (p *blockParser) flushQuote() {
	if len(p.quote) == 0 {
		return
	}
	p.emit(Blockquote{Text: strings.Join(p.quote, "\n")})
	p.quote = nil
}

func (p *blockParser) flushAll() {
	p.flushParagraph()
	p.flushList()
	p.flushOrderedList()
	p.flushQuote()
}

// flushCode emits the open fence, if any. An unterminated fence at the end
// of the document still produces its block.
func (p *blockParser) flushCode() {
	if !p.inCodeFence {
		return
	}
	p.emit(Code{Text: strings.Join(p.codeLines, "\n"), Info: p.codeInfo})
	p.inCodeFence = false
	p.codeLines = nil
	p.codeInfo = ""
}

func setextLevel(lines []string, index int) (int, bool) {
	if index+1 >= len(lines) {
		return 0, false
	}
	underline := strings.TrimSpace(lines[index+1])
	if len(underline) < minUnderlineLength {
		return 0, false
	}
	switch {
	case allBytes(underline, '='):
		return 1, true
	case allBytes(underline, '-'):
		return 2, true
	}
	return 0, false
}

func parseATXHeading(trimmed string) (int, string, bool) {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel {
		return 0, "", false
	}
	if level >= len(trimmed) || trimmed[level] != ' ' {
		return 0, "", false
	}
	text := strings.TrimSpace(trimmed[level+1:])
	if text == "" {
		return 0, "", false
	}
	return level, text, true
}

func parseBulletItem(line, trimmed string) (ListItem, bool) {
	if len(trimmed) < 3 || !isBullet(trimmed[0]) || trimmed[1] != ' ' {
		return ListItem{}, false
	}
	checkbox, text := parseCheckbox(strings.TrimSpace(trimmed[2:]))
	return ListItem{
		Text:     text,
		Indent:   listIndent(line),
		Checkbox: checkbox,
	}, true
}

func parseOrderedItem(line, trimmed string) (ListItem, bool) {
	j := 0
	for j < len(trimmed) && isDigit(trimmed[j]) {
		j++
	}
	if j == 0 || j+1 >= len(trimmed) || trimmed[j] != '.' || trimmed[j+1] != ' ' {
		return ListItem{}, false
	}
	order, err := strconv.Atoi(trimmed[:j])
	if err != nil {
		// numerals too large for an int are left to paragraph text
		return ListItem{}, false
	}
	return ListItem{
		Text:   strings.TrimSpace(trimmed[j+2:]),
		Indent: listIndent(line),
		Order:  &order,
	}, true
}

var checkboxPrefixes = []struct {
	prefix  string
	checked bool
}{
	{"[ ] ", false},
	{"[x] ", true},
	{"[X] ", true},
}

func parseCheckbox(text string) (*bool, string) {
	for _, cb := range checkboxPrefixes {
		if strings.HasPrefix(text, cb.prefix) {
			checked := cb.checked
			return &checked, strings.TrimLeft(text[len(cb.prefix):], " ")
		}
	}
	return nil, text
}

func listIndent(line string) int {
	indent := leadingWidth(line) / 2
	if indent < 0 {
		return 0
	}
	return indent
}

func isThematicBreak(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	switch trimmed[0] {
	case '-', '*', '_':
		return allBytes(trimmed, trimmed[0])
	}
	return false
}
