package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTryParseTableReturnsNextIndex(t *testing.T) {
	lines := []string{
		"before",
		"| A | B | C |",
		"|:---|:---:|---:|",
		"| 1 | 2 | 3 |",
		"| 4 | 5 | 6 |",
		"",
		"after",
	}
	tbl, next, ok := TryParseTable(lines, 1)
	if !ok {
		t.Fatalf("expected table at index 1")
	}
	if next != 5 {
		t.Fatalf("next index = %d, want 5", next)
	}
	want := Table{
		Headers:    []string{"A", "B", "C"},
		Alignments: []Alignment{AlignLeft, AlignCenter, AlignRight},
		Rows:       [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
	}
	if diff := cmp.Diff(want, tbl); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestTryParseTableWithoutOuterPipes(t *testing.T) {
	lines := []string{"a | b", "--- | ---", "1 | 2", "3 | 4 | 5"}
	tbl, next, ok := TryParseTable(lines, 0)
	if !ok {
		t.Fatalf("expected table without outer pipes")
	}
	if next != 3 {
		t.Fatalf("next index = %d, want 3", next)
	}
	if diff := cmp.Diff([][]string{{"1", "2"}}, tbl.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTryParseTableDecodesEscapedPipes(t *testing.T) {
	lines := []string{
		`| a \| b | c |`,
		"|---|---|",
		`| x \| y | \n |`,
	}
	tbl, _, ok := TryParseTable(lines, 0)
	if !ok {
		t.Fatalf("expected table with escaped pipes")
	}
	if diff := cmp.Diff([]string{"a | b", "c"}, tbl.Headers); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"x | y", `\n`}}, tbl.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTryParseTableKeepsEmptyInnerCells(t *testing.T) {
	lines := []string{"| a | b |", "|---|---|", "| | x |"}
	tbl, _, ok := TryParseTable(lines, 0)
	if !ok {
		t.Fatalf("expected table")
	}
	if diff := cmp.Diff([][]string{{"", "x"}}, tbl.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestTryParseTableRejects(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		start int
	}{
		{"single line", []string{"| a | b |"}, 0},
		{"start out of range", []string{"| a | b |", "|---|---|", "| 1 | 2 |"}, 5},
		{"negative start", []string{"| a | b |", "|---|---|", "| 1 | 2 |"}, -1},
		{"header without pipe", []string{"a b", "|---|---|", "| 1 | 2 |"}, 0},
		{"delimiter without pipe", []string{"| a | b |", "---", "| 1 | 2 |"}, 0},
		{"single column", []string{"| a |", "|---|", "| 1 |"}, 0},
		{"count mismatch", []string{"| a | b |", "|---|", "| 1 | 2 |"}, 0},
		{"short delimiter", []string{"| a | b |", "|--|--|", "| 1 | 2 |"}, 0},
		{"colon only delimiter", []string{"| a | b |", "|:::|---|", "| 1 | 2 |"}, 0},
		{"text in delimiter", []string{"| a | b |", "|-x-|---|", "| 1 | 2 |"}, 0},
		{"no body rows", []string{"| a | b |", "|---|---|"}, 0},
		{"blank after delimiter", []string{"| a | b |", "|---|---|", "", "| 1 | 2 |"}, 0},
		{"first row mismatched", []string{"| a | b |", "|---|---|", "| 1 |"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, next, ok := TryParseTable(tt.lines, tt.start); ok || next != tt.start {
				t.Fatalf("expected rejection with next=%d, got ok=%v next=%d", tt.start, ok, next)
			}
		})
	}
}

func TestTableInvariantsHoldForParsedTables(t *testing.T) {
	input := "| a | b | c |\n|---|:-:|--:|\n| 1 | 2 | 3 |\n| x | y | z |\n| short |"
	for _, block := range Parse(input) {
		tbl, ok := block.(Table)
		if !ok {
			continue
		}
		if len(tbl.Headers) != len(tbl.Alignments) {
			t.Fatalf("headers %d != alignments %d", len(tbl.Headers), len(tbl.Alignments))
		}
		for i, row := range tbl.Rows {
			if len(row) != len(tbl.Headers) {
				t.Fatalf("row %d has %d cells, want %d", i, len(row), len(tbl.Headers))
			}
		}
	}
}

func TestDelimiterRowShortColonForms(t *testing.T) {
	tests := []struct {
		cells []string
		want  []Alignment
		ok    bool
	}{
		{[]string{":-:", ":--", "--:", "---"}, []Alignment{AlignCenter, AlignLeft, AlignRight, AlignLeft}, true},
		{[]string{"--", "---"}, nil, false},
		{[]string{":::", "---"}, nil, false},
		{[]string{"-::", "---"}, nil, false},
	}
	for _, tt := range tests {
		got, ok := parseDelimiterRow(tt.cells)
		if ok != tt.ok {
			t.Fatalf("parseDelimiterRow(%q) ok = %v, want %v", tt.cells, ok, tt.ok)
		}
		if diff := cmp.Diff(tt.want, got); ok && diff != "" {
			t.Fatalf("parseDelimiterRow(%q) mismatch (-want +got):\n%s", tt.cells, diff)
		}
	}
}
