// Package watch reports changes to WebIDL files in a directory.
package watch

import (
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches a directory and calls onChange with the files that were
// written since the last call, once writes have settled.
type Watcher struct {
	dir      string
	match    func(path string) bool
	onChange func(paths []string) error
	debounce time.Duration
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
	done     chan struct{}

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
}

// New creates a watcher for dir. Only files for which match returns true
// are reported; a nil match reports every file.
func New(dir string, match func(path string) bool, debounce time.Duration, onChange func(paths []string) error, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		dir:      dir,
		match:    match,
		onChange: onChange,
		debounce: debounce,
		logger:   logger,
		done:     make(chan struct{}),
		pending:  make(map[string]bool),
	}
}

// Start begins watching the directory for changes.
func (w *Watcher) Start() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(w.dir); err != nil {
		watcher.Close()
		return err
	}

	w.mu.Lock()
	w.watcher = watcher
	w.mu.Unlock()

	w.logger.Info("watching for changes", "dir", w.dir)

	go w.watchLoop(watcher)
	return nil
}

// Stop stops watching for changes. Pending changes are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	watcher := w.watcher
	w.watcher = nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if watcher != nil {
		close(w.done)
		watcher.Close()
	}
}

func (w *Watcher) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if w.match != nil && !w.match(event.Name) {
				continue
			}
			w.logger.Debug("file changed", "path", event.Name, "event", event.Op.String())
			w.schedule(filepath.Clean(event.Name))

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// schedule records path and restarts the debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher == nil {
		return
	}
	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.watcher == nil || len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]bool)
	w.timer = nil
	w.mu.Unlock()

	sort.Strings(paths)
	w.logger.Info("files changed", "count", len(paths))
	if err := w.onChange(paths); err != nil {
		w.logger.Error("failed to handle changes", "error", err)
	}
}
