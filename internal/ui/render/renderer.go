package render

import (
	"fmt"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdview/internal/layout"
)

const appName = "mdview"

// Frame is everything the renderer needs to draw one screen.
type Frame struct {
	Path       string
	Lines      []layout.Line
	Scroll     int
	XOffset    int
	Wrap       bool
	Watching   bool
	Bookmarked bool
	Message    string
	Err        error
	ShowHelp   bool
	Flash      bool

	EditorAvailable    bool
	ClipboardAvailable bool
}

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// BodyHeight is the number of document rows visible on a screen of
// height h: one header row, one status row and one footer row.
func BodyHeight(h int) int {
	if h <= 3 {
		return 0
	}
	return h - 3
}

// Render draws the entire UI for f.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	w, h := r.screen.Size()

	if f.ShowHelp {
		r.drawHelpOverlay(w, h)
		r.screen.Show()
		return
	}

	r.drawHeader(f, w)
	r.drawBody(f, w, h)
	r.drawStatusLine(f, w, h)
	r.drawFooter(f, w, h)
	r.screen.Show()
}

func (r *Renderer) drawHeader(f Frame, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	x := r.drawTextLine(0, 0, w, appName, headerStyle)
	if x < w {
		r.screen.SetContent(x, 0, ' ', nil, headerStyle)
		x++
	}
	if f.Path != "" && x < w {
		dir, name := filepath.Split(f.Path)
		x = r.drawTextLine(x, 0, w-x, truncateLeft(dir, (w-x)/2), headerStyle)
		x = r.drawTextLine(x, 0, w-x, name, headerStyle.Bold(true))
	}
	if f.Bookmarked && x+2 <= w {
		x = r.drawTextLine(x, 0, w-x, " ★", headerStyle.Foreground(r.theme.BookmarkFg))
	}
	r.fillRow(x, 0, w, headerStyle)
}

func (r *Renderer) drawBody(f Frame, w, h int) {
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	rows := BodyHeight(h)
	for i := 0; i < rows; i++ {
		idx := f.Scroll + i
		if idx < 0 || idx >= len(f.Lines) {
			break
		}
		line := f.Lines[idx]
		y := 1 + i
		end := r.drawSegments(0, y, w, f.XOffset, line, base)
		if isCodeBlockLine(line) {
			r.fillRow(end, y, w, r.styleForSegment(base, layout.StyleCodeBlock))
		}
	}
}

func isCodeBlockLine(line layout.Line) bool {
	return len(line) > 0 && line[len(line)-1].Style == layout.StyleCodeBlock
}

func (r *Renderer) drawStatusLine(f Frame, w, h int) {
	y := h - 2
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	if f.Flash {
		style = tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack)
	}

	position := formatPosition(f.Scroll, BodyHeight(h), len(f.Lines))
	right := position
	if !f.Wrap {
		right = "nowrap  " + right
	}
	if f.Watching {
		right = "watching  " + right
	}
	rightWidth := textWidth(right)

	r.fillRow(0, y, w, style)
	leftMax := w - rightWidth - 1
	if leftMax > 0 {
		switch {
		case f.Err != nil:
			r.drawTextLine(0, y, leftMax, truncateRight(f.Err.Error(), leftMax), style.Foreground(r.theme.ErrorFg))
		case f.Message != "":
			r.drawTextLine(0, y, leftMax, truncateRight(f.Message, leftMax), style)
		}
	}
	if rightWidth <= w {
		r.drawTextLine(w-rightWidth, y, rightWidth, right, style)
	}
}

func (r *Renderer) drawFooter(f Frame, w, h int) {
	y := h - 1
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	x := r.drawTextLine(0, y, w, truncateRight(buildFooterHelpText(f), w), style)
	r.fillRow(x, y, w, style)
}

func formatPosition(scroll, rows, total int) string {
	if total == 0 {
		return "empty"
	}
	last := scroll + rows
	if last > total {
		last = total
	}
	percent := 100
	if total > rows && rows > 0 {
		percent = last * 100 / total
	}
	return fmt.Sprintf("%d-%d/%d %3d%%", scroll+1, last, total, percent)
}
