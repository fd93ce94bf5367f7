package state

import "fmt"

// StateReducer applies view actions to an AppState.
type StateReducer struct{}

// NewStateReducer creates a new reducer
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies an action to state and returns the state. Actions with
// side effects (quit, reload, yank...) are not handled here and produce an
// error so the caller notices a missing route.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== SCROLL =====

	case ScrollDownAction:
		state.Scroll++
		state.clampScroll()
	case ScrollUpAction:
		state.Scroll--
		state.clampScroll()
	case ScrollPageDownAction:
		state.Scroll += pageStep(state)
		state.clampScroll()
	case ScrollPageUpAction:
		state.Scroll -= pageStep(state)
		state.clampScroll()
	case ScrollTopAction:
		state.Scroll = 0
	case ScrollBottomAction:
		state.Scroll = state.MaxScroll()

	// ===== VIEW =====

	case PanRightAction:
		state.XOffset += panStep
		state.clampScroll()
	case PanLeftAction:
		state.XOffset -= panStep
		state.clampScroll()
	case ToggleWrapAction:
		r.toggleWrap(state)
	case HelpToggleAction:
		state.HelpVisible = !state.HelpVisible
	case HelpHideAction:
		state.HelpVisible = false
	case ResizeAction:
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		if state.Wrap && state.layoutWidth != a.Width {
			state.Relayout()
		} else {
			state.clampScroll()
		}

	// ===== DOCUMENT =====

	case DocumentLoadedAction:
		if a.Err != nil {
			state.LastError = a.Err
			return state, nil
		}
		state.Doc = a.Doc
		state.Blocks = a.Blocks
		state.LastError = nil
		state.Relayout()

	default:
		return state, fmt.Errorf("unhandled action %T", action)
	}
	return state, nil
}

// pageStep scrolls a page minus one line of overlap.
func pageStep(state *AppState) int {
	step := state.BodyHeight() - 1
	if step < 1 {
		step = 1
	}
	return step
}

// toggleWrap switches wrap mode and keeps the same part of the document
// near the top of the screen.
func (r *StateReducer) toggleWrap(state *AppState) {
	before := len(state.Lines)
	top := state.Scroll
	state.Wrap = !state.Wrap
	state.XOffset = 0
	state.Relayout()
	if before > 0 {
		state.Scroll = top * len(state.Lines) / before
	}
	state.clampScroll()
}
