// Package watcher watches the on-disk dataset/config directory for changes
// and triggers an engine rebuild, debounced so a burst of writes (e.g. an
// asset pipeline replacing several files) collapses into one rebuild. The
// debounce-then-batch shape follows the teacher's cmd/commands FileWatcher.
package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wayfynd/navcore/internal/logger"
)

// RebuildFunc re-initializes the engine from the current on-disk state.
type RebuildFunc func(ctx context.Context) error

// Watcher monitors a set of directories and calls Rebuild, debounced, on
// any change beneath them.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	rebuild  RebuildFunc

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// New returns a Watcher that adds every path in paths (each must exist; use
// the containing directory, not individual files, since fsnotify watches
// directories) and debounces rebuild calls by debounce.
func New(paths []string, debounce time.Duration, rebuild RebuildFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			logger.Warn("watcher: failed to watch %s: %v", p, err)
			continue
		}
		logger.Info("watcher: watching %s", p)
	}
	return &Watcher{fsw: fsw, debounce: debounce, rebuild: rebuild, done: make(chan struct{})}, nil
}

// Start runs the debounced event loop until ctx is canceled or Close is
// called. Safe to call once; a second call is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.loop(ctx)
}

func (w *Watcher) loop(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			logger.Debug("watcher: event %s on %s", event.Op, event.Name)
			pending = true
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: fsnotify error: %v", err)
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := w.rebuild(ctx); err != nil {
				logger.Warn("watcher: rebuild failed: %v", err)
			} else {
				logger.Info("watcher: rebuild complete")
			}
		}
	}
}

// Close stops the watcher and releases its fsnotify handle.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
