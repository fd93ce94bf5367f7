package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/kk-code-lab/mdview/internal/document"
	"github.com/kk-code-lab/mdview/internal/logging"
)

const DefaultDebounce = 150 * time.Millisecond

// Change carries a reloaded document whose content differs from the
// previous version.
type Change struct {
	Document document.Document
}

type Options struct {
	// Debounce is the quiet period after the last event before reloading.
	Debounce time.Duration
	// Digest of the version already shown. When empty the file is read once
	// at construction to establish it.
	Digest string
	Logger logging.Logger
}

// Watcher reloads a single document when it changes on disk.
//
// The parent directory is watched rather than the file itself because
// editors that save atomically replace the file, which drops a watch
// placed on the old inode.
type Watcher struct {
	path       string
	fsw        *fsnotify.Watcher
	debounce   time.Duration
	log        logging.Logger
	lastDigest string

	changes chan Change
	errors  chan error
	done    chan struct{}
	once    sync.Once
}

func New(path string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	abs = filepath.Clean(abs)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:       abs,
		fsw:        fsw,
		debounce:   opts.Debounce,
		log:        opts.Logger,
		lastDigest: opts.Digest,
		changes:    make(chan Change),
		errors:     make(chan error, 1),
		done:       make(chan struct{}),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.log == nil {
		w.log = logging.NewEmptyLog()
	}
	if w.lastDigest == "" {
		if doc, err := document.Load(abs); err == nil {
			w.lastDigest = doc.Digest
		}
	}
	return w, nil
}

// Changes delivers reloaded documents.
func (w *Watcher) Changes() <-chan Change { return w.changes }

// Errors delivers reload and watch errors. Errors are dropped while a
// previous one is still unread.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Run processes file system events until ctx is done or Close is called.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.sendError(err)
		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

// Close stops Run and releases the underlying watch.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *Watcher) reload(ctx context.Context) {
	doc, err := document.Load(w.path)
	if err != nil {
		w.sendError(fmt.Errorf("reload: %w", err))
		return
	}
	if doc.Digest == w.lastDigest {
		w.log.Info("watch: %s unchanged (%s)", w.path, doc.Digest[:12])
		return
	}
	w.lastDigest = doc.Digest
	w.log.Info("watch: %s changed (%s)", w.path, doc.Digest[:12])

	select {
	case w.changes <- Change{Document: doc}:
	case <-ctx.Done():
	case <-w.done:
	}
}

func (w *Watcher) sendError(err error) {
	w.log.Warning("watch: %v", err)
	select {
	case w.errors <- err:
	default:
	}
}
