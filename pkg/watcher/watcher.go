package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher wraps fsnotify to report changes to specific files.
// Editors often save by renaming a temp file over the original, which drops
// a watch placed on the file itself, so the parent directory is watched and
// events are filtered by name.
type FileWatcher struct {
	*fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	mu       sync.RWMutex
}

// New creates a FileWatcher that coalesces bursts of events within debounce.
func New(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FileWatcher{
		Watcher:  w,
		files:    make(map[string]bool),
		debounce: debounce,
	}, nil
}

// AddFile starts watching path.
func (w *FileWatcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	w.mu.Lock()
	w.files[abs] = true
	w.mu.Unlock()
	return nil
}

// IsWatched reports whether path is one of the watched files.
func (w *FileWatcher) IsWatched(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[abs]
}

// Run delivers debounced change notifications to onChange until ctx is done
// or the watcher is closed. onChange runs on the Run goroutine.
func (w *FileWatcher) Run(ctx context.Context, onChange func(path string), onError func(error)) error {
	pending := make(map[string]bool)
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

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.IsWatched(event.Name) {
				continue
			}
			abs, _ := filepath.Abs(event.Name)
			pending[abs] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			for path := range pending {
				onChange(path)
			}
			pending = make(map[string]bool)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}
