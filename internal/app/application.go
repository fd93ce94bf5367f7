package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/mdview/internal/bookmarks"
	"github.com/kk-code-lab/mdview/internal/config"
	"github.com/kk-code-lab/mdview/internal/document"
	"github.com/kk-code-lab/mdview/internal/logging"
	"github.com/kk-code-lab/mdview/internal/markdown"
	statepkg "github.com/kk-code-lab/mdview/internal/state"
	inputui "github.com/kk-code-lab/mdview/internal/ui/input"
	renderui "github.com/kk-code-lab/mdview/internal/ui/render"
	"github.com/kk-code-lab/mdview/internal/watch"
)

// Config describes what the viewer shows and where it keeps its data.
type Config struct {
	Path      string
	Settings  config.Settings
	Bookmarks *bookmarks.Store
	Logger    logging.Logger
}

// Application represents the running viewer.
type Application struct {
	screen         tcell.Screen
	state          *statepkg.AppState
	reducer        *statepkg.StateReducer
	renderer       *renderui.Renderer
	input          *inputui.InputHandler
	actionCh       chan statepkg.Action
	loadedCh       chan statepkg.DocumentLoadedAction
	done           chan struct{}
	closeOnce      sync.Once
	shouldQuit     bool
	bookmarks      *bookmarks.Store
	watcher        *watch.Watcher
	log            logging.Logger
	clipboardCmd   []string
	clipboardAvail bool
	editorCmd      []string
}

// NewApplication opens the terminal and loads the document.
func NewApplication(cfg Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	// Parse mouse sequences so wheel scrolling doesn't leak as key events.
	screen.EnableMouse()

	app, err := New(screen, cfg)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

// New builds an application on an initialized screen. The document is
// loaded synchronously so a missing or unreadable file fails here.
func New(screen tcell.Screen, cfg Config) (*Application, error) {
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewEmptyLog()
	}

	loaded := loadDocument(path)
	if loaded.Err != nil {
		return nil, loaded.Err
	}

	lookup := systemLookup()
	clipboardCmd, clipboardAvail := lookup.clipboard(cfg.Settings.Commands.Clipboard)
	editorCmd, editorAvail := lookup.editor(cfg.Settings.Commands.Editor)

	view := cfg.Settings.View
	w, h := screen.Size()
	state := &statepkg.AppState{
		Path:                 path,
		ScreenWidth:          w,
		ScreenHeight:         h,
		Wrap:                 view.Wrap,
		TabWidth:             view.TabWidth,
		TableMaxLinesPerCell: view.TableMaxLinesPerCell,
		ClipboardAvailable:   clipboardAvail,
		EditorAvailable:      editorAvail,
	}
	if cfg.Bookmarks != nil {
		state.Bookmarked = cfg.Bookmarks.Contains(path)
	}

	actionCh := make(chan statepkg.Action, 10)
	reducer := statepkg.NewStateReducer()
	if _, err := reducer.Reduce(state, loaded); err != nil {
		return nil, err
	}

	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:         screen,
		state:          state,
		reducer:        reducer,
		renderer:       renderui.NewRenderer(screen),
		input:          inputHandler,
		actionCh:       actionCh,
		loadedCh:       make(chan statepkg.DocumentLoadedAction, 1),
		done:           make(chan struct{}),
		bookmarks:      cfg.Bookmarks,
		log:            logger,
		clipboardCmd:   clipboardCmd,
		clipboardAvail: clipboardAvail,
		editorCmd:      editorCmd,
	}

	if cfg.Settings.Watch.Enabled {
		watcher, err := watch.New(path, watch.Options{
			Debounce: cfg.Settings.Watch.Debounce,
			Digest:   loaded.Doc.Digest,
			Logger:   logger,
		})
		if err != nil {
			logger.Warning("watch disabled: %v", err)
		} else {
			app.watcher = watcher
			state.Watching = true
		}
	}

	logger.Info("opened %s (%d blocks)", path, len(loaded.Blocks))
	return app, nil
}

// loadDocument reads and parses path into an action for the reducer.
func loadDocument(path string) statepkg.DocumentLoadedAction {
	doc, err := document.Load(path)
	if err != nil {
		return statepkg.DocumentLoadedAction{Err: fmt.Errorf("load %s: %w", filepath.Base(path), err)}
	}
	return statepkg.DocumentLoadedAction{Doc: doc, Blocks: markdown.Parse(doc.Text)}
}

// deliver hands a document read off the loop goroutine back to the loop.
// actionCh is fed only by the loop itself, so background results use
// loadedCh. It gives up once the application is closed.
func (app *Application) deliver(loaded statepkg.DocumentLoadedAction) {
	select {
	case app.loadedCh <- loaded:
	case <-app.done:
	}
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	app.closeOnce.Do(func() {
		close(app.done)
		if app.watcher != nil {
			err = app.watcher.Close()
		}
		app.screen.Fini()
	})
	return err
}

// Path returns the absolute path of the shown document.
func (app *Application) Path() string {
	return app.state.Path
}
