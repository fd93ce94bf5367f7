package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdview/internal/document"
	"github.com/kk-code-lab/mdview/internal/markdown"
	statepkg "github.com/kk-code-lab/mdview/internal/state"
	"github.com/kk-code-lab/mdview/internal/watch"
)

// wheelStep is how many lines one mouse wheel notch scrolls.
const wheelStep = 3

const reloadingMessage = "reloading…"

// Run drives the viewer until the user quits or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	defer func() { _ = app.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.watcher != nil {
		go func() {
			if err := app.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.log.Warning("watcher stopped: %v", err)
			}
		}()
	}

	app.render()
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-app.done:
				return
			}
		}
	}()

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var changes <-chan watch.Change
	var watchErrs <-chan error
	if app.watcher != nil {
		changes = app.watcher.Changes()
		watchErrs = app.watcher.Errors()
	}

	const animationInterval = 50 * time.Millisecond
	var animationTimer *time.Timer
	var animationCh <-chan time.Time

	startAnimation := func() {
		if animationTimer == nil {
			animationTimer = time.NewTimer(animationInterval)
		} else {
			if !animationTimer.Stop() {
				select {
				case <-animationTimer.C:
				default:
				}
			}
			animationTimer.Reset(animationInterval)
		}
		animationCh = animationTimer.C
	}

	stopAnimation := func() {
		if animationTimer == nil {
			return
		}
		if !animationTimer.Stop() {
			select {
			case <-animationTimer.C:
			default:
			}
		}
		animationCh = nil
	}
	defer stopAnimation()

	for !app.shouldQuit {
		if renderPending {
			app.render()
			renderPending = false
		}

		if app.state.Flashing(time.Now()) {
			startAnimation()
		} else {
			stopAnimation()
		}

		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-animationCh:
			renderPending = true
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		case loaded := <-app.loadedCh:
			if app.handleAction(loaded) {
				renderPending = true
			}
		case change := <-changes:
			go func(doc document.Document) {
				app.deliver(statepkg.DocumentLoadedAction{Doc: doc, Blocks: markdown.Parse(doc.Text)})
			}(change.Document)
		case err := <-watchErrs:
			app.state.LastError = err
			renderPending = true
		case <-sigContCh:
			if app.resumeAfterStop() {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
	return nil
}

func (app *Application) render() {
	app.renderer.Render(app.state.Frame(time.Now()))
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		// A keypress acknowledges whatever the status line was showing.
		app.state.Message = ""
		app.state.LastError = nil
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		app.screen.Sync()
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventMouse:
		return app.handleMouse(ev)
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// handleMouse maps the wheel to scrolling. Clicks are ignored.
func (app *Application) handleMouse(ev *tcell.EventMouse) bool {
	var action statepkg.Action
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		action = statepkg.ScrollUpAction{}
	case buttons&tcell.WheelDown != 0:
		action = statepkg.ScrollDownAction{}
	case buttons&tcell.WheelLeft != 0:
		action = statepkg.PanLeftAction{}
	case buttons&tcell.WheelRight != 0:
		action = statepkg.PanRightAction{}
	default:
		return false
	}
	for i := 0; i < wheelStep; i++ {
		app.handleAction(action)
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.ReloadAction:
		app.state.Message = reloadingMessage
		go app.reload(app.state.Path)
		return true
	case statepkg.ToggleBookmarkAction:
		return app.handleBookmark()
	case statepkg.YankPathAction:
		return app.handleClipboard()
	case statepkg.OpenEditorAction:
		return app.handleEditorOpen()
	case statepkg.DocumentLoadedAction:
		if app.state.Message == reloadingMessage {
			app.state.Message = ""
		}
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.log.Error("reduce %T: %v", action, err)
		app.state.LastError = err
	}
	return true
}

// reload reads the document again off the loop goroutine.
func (app *Application) reload(path string) {
	app.deliver(loadDocument(path))
}
