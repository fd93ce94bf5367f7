package markdown

// Block is one structural unit of a parsed document.
type Block interface {
	Kind() BlockKind
}

// BlockKind identifies the concrete type behind a Block.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindList
	KindOrderedList
	KindTable
	KindBlockquote
	KindRule
	KindCode
)

var blockKindNames = [...]string{
	KindHeading:     "heading",
	KindParagraph:   "paragraph",
	KindList:        "list",
	KindOrderedList: "ordered_list",
	KindTable:       "table",
	KindBlockquote:  "blockquote",
	KindRule:        "rule",
	KindCode:        "code",
}

func (k BlockKind) String() string {
	if int(k) >= 0 && int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "unknown"
}

type Heading struct {
	Level int
	Text  string
}

func (Heading) Kind() BlockKind { return KindHeading }

// Paragraph holds soft-wrapped lines collapsed with single spaces.
type Paragraph struct {
	Text string
}

func (Paragraph) Kind() BlockKind { return KindParagraph }

type List struct {
	Items []ListItem
}

func (List) Kind() BlockKind { return KindList }

type OrderedList struct {
	Items []ListItem
}

func (OrderedList) Kind() BlockKind { return KindOrderedList }

// ListItem is a single bullet or numbered entry. Indent is the nesting
// depth derived from leading whitespace, Checkbox is nil unless the item
// starts with a task marker and Order is nil for unordered items.
type ListItem struct {
	Text     string
	Indent   int
	Checkbox *bool
	Order    *int
}

type Table struct {
	Headers    []string
	Alignments []Alignment
	Rows       [][]string
}

func (Table) Kind() BlockKind { return KindTable }

// Blockquote keeps quoted line breaks as '\n'.
type Blockquote struct {
	Text string
}

func (Blockquote) Kind() BlockKind { return KindBlockquote }

type Rule struct{}

func (Rule) Kind() BlockKind { return KindRule }

// Code is the verbatim content of a fenced block. Info is whatever followed
// the opening fence marker, usually a language name.
type Code struct {
	Text string
	Info string
}

func (Code) Kind() BlockKind { return KindCode }

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// MarshalText encodes the alignment by name.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// CSSClass returns the class applied to every HTML cell of a column.
func (a Alignment) CSSClass() string {
	return "a-" + a.String()
}
