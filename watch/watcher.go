// Package watch re-runs a callback when any of a set of input files changes.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/dep5/errors"
	"github.com/teranos/dep5/logger"
)

// ChangeCallback is called once per debounced burst of changes with the
// files that changed during the burst.
type ChangeCallback func(ctx context.Context, changed []string) error

// Watcher watches files for changes and triggers callbacks
type Watcher struct {
	files          map[string]bool
	watcher        *fsnotify.Watcher
	callbacks      []ChangeCallback
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	pending        map[string]bool
	log            *zap.SugaredLogger
	done           chan struct{}
}

// New creates a watcher for the given files. Their directories are watched
// so that editors replacing a file by rename are seen too.
func New(paths []string, debounce time.Duration, log *zap.SugaredLogger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		files:          make(map[string]bool),
		watcher:        fw,
		debouncePeriod: debounce,
		pending:        make(map[string]bool),
		log:            log,
		done:           make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	if len(w.files) == 0 {
		fw.Close()
		return nil, errors.NewInvalidInputError("nothing to watch")
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return w, nil
}

// OnChange registers a callback to be called after changes settle
func (w *Watcher) OnChange(callback ChangeCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, callback)
}

// Run watches until ctx is cancelled or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.done)
	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.stopTimer()
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("watched file changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.schedule(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.stopTimer()
				return nil
			}
			w.log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

// Stop closes the underlying watcher, which makes Run return.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// Done is closed when Run returns.
func (w *Watcher) Done() <-chan struct{} { return w.done }

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !w.files[filepath.Clean(event.Name)] {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

// schedule debounces rapid file changes and fires the callbacks
func (w *Watcher) schedule(ctx context.Context, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[filepath.Clean(name)] = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() { w.fire(ctx) })
}

func (w *Watcher) fire(ctx context.Context) {
	w.mu.Lock()
	changed := make([]string, 0, len(w.pending))
	for name := range w.pending {
		changed = append(changed, name)
	}
	w.pending = make(map[string]bool)
	callbacks := make([]ChangeCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	for _, callback := range callbacks {
		if err := callback(ctx, changed); err != nil {
			// Remaining callbacks still run
			w.log.Errorw("change callback failed", logger.FieldError, err)
		}
	}
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}
