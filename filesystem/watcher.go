package filesystem

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the scanned root for changes so the catalog can be
// rebuilt. Events are debounced: editors fire bursts of writes for a
// single save.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	Events    chan string // changed path, debounced
	done      chan struct{}
}

// NewWatcher watches root and all non-ignored subdirectories.
func NewWatcher(root string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		Events:    make(chan string, 10),
		done:      make(chan struct{}),
	}

	// fsnotify is not recursive; add every directory explicitly.
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			for _, ignored := range ignoredDirs {
				if info.Name() == ignored {
					return filepath.SkipDir
				}
			}
			return w.fsWatcher.Add(path)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.loop()

	return w, nil
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() {
	close(w.done)
	w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	const debounce = 100 * time.Millisecond

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			base := filepath.Base(event.Name)
			skip := false
			for _, ignored := range ignoredDirs {
				if base == ignored {
					skip = true
					break
				}
			}
			if skip {
				continue
			}

			// Chmod events are noise on most platforms.
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			// New directories need to be added to the watch set.
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.fsWatcher.Add(event.Name)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case w.Events <- event.Name:
				case <-w.done:
				}
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Println("watcher error:", err)
		}
	}
}
