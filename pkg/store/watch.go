package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned by Watch for backends without files.
var ErrNotWatchable = errors.New("store: backend cannot be watched")

// Watch follows external changes to the backend's files and calls Reload
// after a quiet period. It returns once the watch is set up; watching stops
// when ctx is cancelled.
func (s *GoalStore) Watch(ctx context.Context) error {
	w, ok := s.backend.(Watchable)
	if !ok {
		return ErrNotWatchable
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(w.WatchDir()); err != nil {
		watcher.Close()
		return fmt.Errorf("store: watch %s: %w", w.WatchDir(), err)
	}

	go func() {
		defer watcher.Close()

		var (
			mu    sync.Mutex
			timer *time.Timer
		)
		defer func() {
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !w.Match(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(s.opts.Debounce, func() {
					if ctx.Err() == nil {
						s.Reload()
					}
				})
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("watcher error", "error", err)
			}
		}
	}()
	return nil
}
