package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// commandBuilder is swapped out in tests.
var commandBuilder = exec.Command

var (
	errNoClipboard = errors.New("no clipboard command found")
	errNoEditor    = errors.New("no editor found; set $VISUAL or $EDITOR")
	errNoBookmarks = errors.New("bookmarks are not available")
)

func (app *Application) handleClipboard() bool {
	if !app.clipboardAvail || len(app.clipboardCmd) == 0 {
		app.state.LastError = errNoClipboard
		return true
	}
	text := normalizeClipboardPath(app.state.Path, runtime.GOOS)
	cmd := commandBuilder(app.clipboardCmd[0], app.clipboardCmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		app.state.LastError = fmt.Errorf("%s: %w", app.clipboardCmd[0], err)
		app.log.Warning("yank failed: %v", err)
		return true
	}
	app.state.LastYankTime = time.Now()
	app.state.Message = "copied " + text
	return true
}

func normalizeClipboardPath(inputPath string, goos string) string {
	if strings.EqualFold(goos, "windows") {
		cleaned := filepath.Clean(inputPath)
		return strings.ReplaceAll(cleaned, "/", `\`)
	}
	return path.Clean(filepath.ToSlash(inputPath))
}

func (app *Application) handleBookmark() bool {
	if app.bookmarks == nil {
		app.state.LastError = errNoBookmarks
		return true
	}
	current := app.state.Path
	if app.bookmarks.Contains(current) {
		if err := app.bookmarks.Remove(current); err != nil {
			app.state.LastError = err
			app.log.Error("remove bookmark: %v", err)
			return true
		}
		app.state.Bookmarked = false
		app.state.Message = "bookmark removed"
		return true
	}
	if _, err := app.bookmarks.Add(current); err != nil {
		app.state.LastError = err
		app.log.Error("add bookmark: %v", err)
		return true
	}
	app.state.Bookmarked = true
	app.state.Message = "bookmarked"
	return true
}

func (app *Application) handleEditorOpen() bool {
	if !app.state.EditorAvailable || len(app.editorCmd) == 0 {
		app.state.LastError = errNoEditor
		return true
	}
	if err := app.openFileInEditor(app.state.Path); err != nil {
		app.state.LastError = err
		app.log.Warning("editor: %v", err)
	}
	// The file may have changed; the watcher is not guaranteed to be on.
	go app.reload(app.state.Path)
	return true
}

func (app *Application) openFileInEditor(filePath string) error {
	if len(app.editorCmd) == 0 {
		return errNoEditor
	}

	editorArgs := app.editorArgsWithFile(filePath)
	useTTY := runtime.GOOS != "windows"
	var tty *os.File
	var err error

	if useTTY {
		tty, err = os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return app.openFileInEditorFallback(editorArgs)
		}
		defer func() {
			_ = tty.Close()
		}()
	}

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	cmd := commandBuilder(editorArgs[0], editorArgs[1:]...)
	if useTTY {
		cmd.Stdin = tty
		cmd.Stdout = tty
		cmd.Stderr = tty
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	runErr := cmd.Run()
	// Keystrokes typed into the editor must not replay into the viewer.
	_ = flushConsoleInput()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	app.screen.Sync()
	if runErr != nil {
		return fmt.Errorf("%s: %w", editorArgs[0], runErr)
	}
	return nil
}

func (app *Application) openFileInEditorFallback(args []string) error {
	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}
	defer func() {
		_ = app.screen.Resume()
		app.screen.Sync()
	}()

	cmd := commandBuilder(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

func (app *Application) editorArgsWithFile(filePath string) []string {
	args := make([]string, len(app.editorCmd)+1)
	copy(args, app.editorCmd)
	args[len(app.editorCmd)] = filePath
	return args
}
