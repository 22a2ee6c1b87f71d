package mcp

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloadable is an interface for components that can be reloaded.
type Reloadable interface {
	Reload() error
}

// FileWatcher watches the index directory for rebuilds and triggers reload.
type FileWatcher struct {
	reloadable   Reloadable
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	started      atomic.Bool
	stopOnce     sync.Once
}

// NewFileWatcher creates a new file watcher for the specified directory.
func NewFileWatcher(reloadable Reloadable, watchDir string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(watchDir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileWatcher{
		reloadable:   reloadable,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Start begins watching for file changes.
func (fw *FileWatcher) Start(ctx context.Context) {
	fw.started.Store(true)
	go fw.watch(ctx)
}

// Stop stops the file watcher. Safe to call on a watcher that was never
// started.
func (fw *FileWatcher) Stop() {
	fw.stopOnce.Do(func() {
		close(fw.stopCh)
		if fw.started.Load() {
			<-fw.doneCh // Wait for goroutine to finish
		}
		fw.watcher.Close()
	})
}

// watch is the main event loop with debouncing logic.
func (fw *FileWatcher) watch(ctx context.Context) {
	defer close(fw.doneCh)

	var debounceTimer *time.Timer
	reloadCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-fw.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// An index rebuild shows up as writes, creates and renames
			// under the data directory.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				// Reset debounce timer - properly stop and drain
				if debounceTimer != nil {
					if !debounceTimer.Stop() {
						select {
						case <-debounceTimer.C:
						default:
						}
					}
				}
				debounceTimer = time.AfterFunc(fw.debounceTime, func() {
					// Send reload signal (non-blocking)
					select {
					case reloadCh <- struct{}{}:
					default:
					}
				})
			}

		case <-reloadCh:
			fw.triggerReload()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// triggerReload executes a reload of the reloadable component.
func (fw *FileWatcher) triggerReload() {
	log.Printf("Index changed, reloading...")
	start := time.Now()

	if err := fw.reloadable.Reload(); err != nil {
		log.Printf("Error reloading: %v (keeping old state)", err)
		return
	}

	log.Printf("Reloaded successfully in %v", time.Since(start))
}
