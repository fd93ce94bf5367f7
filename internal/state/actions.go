package state

import (
	"github.com/kk-code-lab/mdview/internal/document"
	"github.com/kk-code-lab/mdview/internal/markdown"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== SCROLL ACTIONS =====

type ScrollUpAction struct{}
type ScrollDownAction struct{}
type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}
type ScrollTopAction struct{}
type ScrollBottomAction struct{}

// ===== VIEW ACTIONS =====

type PanLeftAction struct{}
type PanRightAction struct{}
type ToggleWrapAction struct{}
type HelpToggleAction struct{}
type HelpHideAction struct{}

type ResizeAction struct {
	Width  int
	Height int
}

// ===== DOCUMENT ACTIONS =====

// DocumentLoadedAction replaces the shown document. A non-nil Err keeps the
// previous document on screen and reports the failure.
type DocumentLoadedAction struct {
	Doc    document.Document
	Blocks []markdown.Block
	Err    error
}

// ===== APPLICATION ACTIONS =====
// These have side effects and are handled by the application loop.

type QuitAction struct{}
type SuspendAction struct{}
type ReloadAction struct{}
type ToggleBookmarkAction struct{}
type YankPathAction struct{}
type OpenEditorAction struct{}
