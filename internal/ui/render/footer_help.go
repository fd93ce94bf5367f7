package render

import "strings"

// buildFooterHelpText returns the footer hint string with leading/trailing padding.
func buildFooterHelpText(f Frame) string {
	parts := buildFooterHelpSegments(f)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles the key hints shown under the document.
func buildFooterHelpSegments(f Frame) []string {
	segments := []string{
		"↑↓/Pg: scroll",
		"g/G: top/end",
	}
	if f.Wrap {
		segments = append(segments, "w: no wrap")
	} else {
		segments = append(segments, "w: wrap", "←→: pan")
	}
	if f.Bookmarked {
		segments = append(segments, "m: unmark")
	} else {
		segments = append(segments, "m: bookmark")
	}
	segments = append(segments, optionalHelpSegments(f)...)
	return append(segments, "?: help", "q: quit")
}

func optionalHelpSegments(f Frame) []string {
	var segments []string
	if f.ClipboardAvailable {
		segments = append(segments, "y: yank path")
	}
	if f.EditorAvailable {
		segments = append(segments, "e: edit file")
	}
	return segments
}
