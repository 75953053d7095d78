package store

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/yuzuha/screenscribe/internal/util"
)

// Watcher signals when any of a set of files changes. Used by watch
// mode to regenerate the report as the recorder and focus log append.
type Watcher struct {
	watcher *fsnotify.Watcher
	names   map[string]struct{}
	events  chan string
}

// NewWatcher watches the parent directories of the given files and
// forwards events for exactly those files. Watching the directory
// rather than the file survives atomic rewrites.
func NewWatcher(paths []string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: watcher,
		names:   make(map[string]struct{}, len(paths)),
		events:  make(chan string, 100),
	}

	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		w.names[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				abs = event.Name
			}
			if _, watched := w.names[abs]; !watched {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				select {
				case w.events <- abs:
				default:
					// Channel full: a regeneration is already pending.
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

// Events returns the change notification channel.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
