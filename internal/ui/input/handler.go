package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/mdview/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false
// when the event asks the application to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	helpVisible := ih.state != nil && ih.state.HelpVisible

	if helpVisible {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			ih.actionChan <- statepkg.QuitAction{}
			return false
		case tcell.KeyEscape:
			ih.actionChan <- statepkg.HelpHideAction{}
		case tcell.KeyRune:
			r := ev.Rune()
			if r == '?' || r == 'q' || r == 'Q' {
				ih.actionChan <- statepkg.HelpHideAction{}
			}
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.ScrollUpAction{}
	case tcell.KeyDown, tcell.KeyEnter:
		ih.actionChan <- statepkg.ScrollDownAction{}
	case tcell.KeyPgUp, tcell.KeyCtrlB:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn, tcell.KeyCtrlF:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.ScrollTopAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.ScrollBottomAction{}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.PanLeftAction{}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.PanRightAction{}
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'j':
		ih.actionChan <- statepkg.ScrollDownAction{}
	case 'k':
		ih.actionChan <- statepkg.ScrollUpAction{}
	case ' ', 'f':
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case 'b':
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case 'g':
		ih.actionChan <- statepkg.ScrollTopAction{}
	case 'G':
		ih.actionChan <- statepkg.ScrollBottomAction{}
	case 'h':
		ih.actionChan <- statepkg.PanLeftAction{}
	case 'l':
		ih.actionChan <- statepkg.PanRightAction{}
	case 'w':
		ih.actionChan <- statepkg.ToggleWrapAction{}
	case 'r':
		ih.actionChan <- statepkg.ReloadAction{}
	case 'm':
		ih.actionChan <- statepkg.ToggleBookmarkAction{}
	case 'y':
		ih.actionChan <- statepkg.YankPathAction{}
	case 'e':
		ih.actionChan <- statepkg.OpenEditorAction{}
	case '?':
		ih.actionChan <- statepkg.HelpToggleAction{}
	}
	return true
}
