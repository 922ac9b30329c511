package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long the watcher waits after the last filesystem
// event before invoking the change callback. Editors and build steps
// touch several files in quick bursts; one reload per burst is enough.
const watchDebounce = 100 * time.Millisecond

// watchDir watches root and every directory below it, invoking onChange
// with the final event once a burst of changes settles. Directories
// created while watching are added to the watch. Close the returned
// watcher to stop.
func watchDir(root string, logf func(format string, args ...any), onChange func(fsnotify.Event)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var (
			mu    sync.Mutex
			timer *time.Timer
			last  fsnotify.Event
		)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							logf("watch %s: %v", event.Name, err)
						}
					}
				}
				mu.Lock()
				last = event
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					mu.Lock()
					settled := last
					mu.Unlock()
					onChange(settled)
				})
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logf("watch: %v", err)
			}
		}
	}()
	return watcher, nil
}
