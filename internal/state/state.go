package state

import (
	"time"

	"github.com/kk-code-lab/mdview/internal/document"
	"github.com/kk-code-lab/mdview/internal/layout"
	"github.com/kk-code-lab/mdview/internal/markdown"
	renderui "github.com/kk-code-lab/mdview/internal/ui/render"
)

// panStep is how many columns one horizontal pan moves.
const panStep = 8

// flashDuration is how long the status line highlights after a yank.
const flashDuration = 100 * time.Millisecond

// AppState is the single source of truth for the viewer.
type AppState struct {
	// Document
	Path   string
	Doc    document.Document
	Blocks []markdown.Block
	Lines  []layout.Line

	// Viewport
	Scroll       int
	XOffset      int
	ScreenWidth  int
	ScreenHeight int

	// Layout settings
	Wrap                 bool
	TabWidth             int
	TableMaxLinesPerCell int

	// layoutWidth is the screen width Lines were computed for.
	layoutWidth  int
	maxLineWidth int

	HelpVisible        bool
	Watching           bool
	Bookmarked         bool
	EditorAvailable    bool
	ClipboardAvailable bool

	Message      string
	LastError    error
	LastYankTime time.Time
}

// BodyHeight is the number of document rows on screen.
func (s *AppState) BodyHeight() int {
	return renderui.BodyHeight(s.ScreenHeight)
}

// MaxScroll is the largest scroll offset that still fills the body.
func (s *AppState) MaxScroll() int {
	limit := len(s.Lines) - s.BodyHeight()
	if limit < 0 {
		return 0
	}
	return limit
}

// MaxXOffset is the largest horizontal pan that keeps some text visible.
func (s *AppState) MaxXOffset() int {
	if s.Wrap {
		return 0
	}
	limit := s.maxLineWidth - s.ScreenWidth
	if limit < 0 {
		return 0
	}
	return limit
}

// Flashing reports whether the yank highlight is still showing.
func (s *AppState) Flashing(now time.Time) bool {
	if s.LastYankTime.IsZero() {
		return false
	}
	return now.Sub(s.LastYankTime) < flashDuration
}

// Frame snapshots the state for the renderer.
func (s *AppState) Frame(now time.Time) renderui.Frame {
	return renderui.Frame{
		Path:               s.Path,
		Lines:              s.Lines,
		Scroll:             s.Scroll,
		XOffset:            s.XOffset,
		Wrap:               s.Wrap,
		Watching:           s.Watching,
		Bookmarked:         s.Bookmarked,
		Message:            s.Message,
		Err:                s.LastError,
		ShowHelp:           s.HelpVisible,
		Flash:              s.Flashing(now),
		EditorAvailable:    s.EditorAvailable,
		ClipboardAvailable: s.ClipboardAvailable,
	}
}

// Relayout recomputes Lines for the current width and wrap mode.
func (s *AppState) Relayout() {
	s.Lines = layout.Render(s.Blocks, layout.Options{
		Width:                s.ScreenWidth,
		Wrap:                 s.Wrap,
		TabWidth:             s.TabWidth,
		TableMaxLinesPerCell: s.TableMaxLinesPerCell,
	})
	s.layoutWidth = s.ScreenWidth
	s.maxLineWidth = 0
	for _, line := range s.Lines {
		if w := line.Width(); w > s.maxLineWidth {
			s.maxLineWidth = w
		}
	}
	s.clampScroll()
}

func (s *AppState) clampScroll() {
	if s.Scroll > s.MaxScroll() {
		s.Scroll = s.MaxScroll()
	}
	if s.Scroll < 0 {
		s.Scroll = 0
	}
	if s.XOffset > s.MaxXOffset() {
		s.XOffset = s.MaxXOffset()
	}
	if s.XOffset < 0 {
		s.XOffset = 0
	}
}
