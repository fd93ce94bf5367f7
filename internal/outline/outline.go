// Package outline extracts the heading tree of a parsed document.
package outline

import (
	"github.com/sahilm/fuzzy"

	"github.com/kk-code-lab/mdview/internal/markdown"
)

// Entry is one heading in document order.
type Entry struct {
	Level int
	Text  string
	// Index is the position of the heading in the block sequence.
	Index int
}

// Build returns every heading of blocks in order.
func Build(blocks []markdown.Block) []Entry {
	var out []Entry
	for i, b := range blocks {
		if h, ok := b.(markdown.Heading); ok {
			out = append(out, Entry{Level: h.Level, Text: h.Text, Index: i})
		}
	}
	return out
}

// Match ranks entries against query, best match first. An empty query
// keeps document order.
func Match(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text
	}
	matches := fuzzy.Find(query, texts)
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
