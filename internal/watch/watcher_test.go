package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

const waitTimeout = 3 * time.Second

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()
	w, err := New(path, Options{Debounce: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		_ = w.Close()
		<-done
	})
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case err := <-w.Errors():
		t.Fatalf("unexpected watch error: %v", err)
	case <-time.After(waitTimeout):
		t.Fatalf("timed out waiting for change")
	}
	return Change{}
}

func TestWatcherReportsContentChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "# one\n")
	w := startWatcher(t, path)

	writeFile(t, path, "# two\n")
	c := waitChange(t, w)
	if c.Document.Text != "# two\n" {
		t.Fatalf("reloaded text = %q", c.Document.Text)
	}
}

func TestWatcherSkipsIdenticalContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "same\n")
	w := startWatcher(t, path)

	writeFile(t, path, "same\n")
	select {
	case c := <-w.Changes():
		t.Fatalf("unexpected change for identical content: %q", c.Document.Text)
	case <-time.After(300 * time.Millisecond):
	}

	writeFile(t, path, "different\n")
	if c := waitChange(t, w); c.Document.Text != "different\n" {
		t.Fatalf("reloaded text = %q", c.Document.Text)
	}
}

func TestWatcherFollowsAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "old\n")
	w := startWatcher(t, path)

	tmp := filepath.Join(dir, ".doc.md.tmp")
	writeFile(t, tmp, "new\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if c := waitChange(t, w); c.Document.Text != "new\n" {
		t.Fatalf("reloaded text = %q", c.Document.Text)
	}
}

func TestWatcherRelevantFiltersOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	writeFile(t, path, "x")
	w, err := New(path, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: filepath.Join(dir, "other.md"), Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		if got := w.relevant(tt.ev); got != tt.want {
			t.Fatalf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
		}
	}
	if w.debounce != DefaultDebounce {
		t.Fatalf("default debounce = %v", w.debounce)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	writeFile(t, path, "x")
	w, err := New(path, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run after Close = %v, want nil", err)
	}
}
