package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sourcegraph/conc"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 500 * time.Millisecond

// Callback is invoked with the watched path once changes settle.
type Callback func(ctx context.Context, path string)

// Watcher monitors a single file and re-runs a callback when it changes.
// The parent directory is watched so editors that save by rename are seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	callback  Callback
	logger    *slog.Logger

	mu      sync.Mutex
	pending time.Time // zero when nothing is queued

	run sync.Mutex // serializes callbacks
	wg  conc.WaitGroup
}

// NewWatcher creates a watcher for path. A non-positive debounce uses
// DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      abs,
		debounce:  debounce,
		logger:    logger,
	}, nil
}

// SetCallback sets the function to call when the file changes.
func (w *Watcher) SetCallback(cb Callback) {
	w.callback = cb
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Start watches until ctx is cancelled or the watcher is stopped. Callbacks
// still running when it returns have finished.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.logger.Debug("watching file", "path", w.path, "debounce", w.debounce)

	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		w.wg.Wait()
	}()

	w.wg.Go(func() { w.processDebounced(ctx) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// handleEvent queues a run for writes to the watched file.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename) {
		w.logger.Debug("watched file moved away", "path", w.path, "op", event.Op.String())
		return
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}

	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

// processDebounced fires the callback once the file has been quiet for the
// debounce period.
func (w *Watcher) processDebounced(ctx context.Context) {
	tick := w.debounce / 5
	if tick < 10*time.Millisecond {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.takeReady() {
				w.wg.Go(func() { w.runCallback(ctx) })
			}
		}
	}
}

func (w *Watcher) takeReady() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

func (w *Watcher) runCallback(ctx context.Context) {
	if w.callback == nil {
		return
	}
	w.run.Lock()
	defer w.run.Unlock()

	if ctx.Err() != nil {
		return
	}
	w.logger.Debug("file changed", "path", w.path)
	w.callback(ctx, w.path)
}

// Stop closes the underlying watcher, which ends Start.
func (w *Watcher) Stop() error {
	err := w.fsWatcher.Close()
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}
