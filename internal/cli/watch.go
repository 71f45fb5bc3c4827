package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 150 * time.Millisecond

// datasetWatcher reports changes to a single dataset file. It watches the
// parent directory so editors that save by renaming a temp file over the
// original are still seen. Bursts of events within the debounce window
// produce one notification.
type datasetWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
	changes  chan struct{}

	stopOnce sync.Once
	done     chan struct{}
}

func newDatasetWatcher(path string, debounce time.Duration, logger *slog.Logger) (*datasetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &datasetWatcher{
		path:     filepath.Clean(path),
		watcher:  w,
		debounce: debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Changes delivers one value per debounced burst of changes.
func (w *datasetWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards changes until ctx is cancelled or Close is called.
func (w *datasetWatcher) Run(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case <-timerC:
			timerC = nil
			select {
			case w.changes <- struct{}{}:
			default:
				// A notification is already pending.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("dataset watcher", "path", w.path, "error", err)
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *datasetWatcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
