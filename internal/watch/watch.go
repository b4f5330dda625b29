// Package watch re-runs the organizer on C# sources as they change on disk.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/codetidy/usort/internal/workspace"
)

const DefaultDebounce = 500 * time.Millisecond

// Handler receives the batch of changed source files after a quiet period.
type Handler func(paths []string)

// Watcher accumulates filesystem events for C# sources under a set of
// directories and flushes them to the handler once writes settle down, so a
// save storm from an IDE produces one organize pass, not dozens.
type Watcher struct {
	notifier *fsnotify.Watcher
	debounce time.Duration
}

func New(dirs []string, debounce time.Duration) (*Watcher, error) {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{notifier: notifier, debounce: debounce}
	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			notifier.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run processes events in the caller's goroutine until ctx is done. The
// handler runs inline between batches; a slow handler delays the next batch
// rather than racing it.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	defer w.notifier.Close()

	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-w.notifier.Events:
			if !ok {
				return nil
			}
			if w.track(event, pending) {
				if timer == nil {
					timer = time.NewTimer(w.debounce)
					fire = timer.C
				} else {
					timer.Reset(w.debounce)
				}
			}
		case <-w.notifier.Errors:
			// Watch errors are transient on most platforms; keep going.
		case <-fire:
			timer = nil
			fire = nil
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			sort.Strings(batch)
			pending = make(map[string]bool)
			handle(batch)
		}
	}
}

// track records interesting events, following newly created directories.
func (w *Watcher) track(event fsnotify.Event, pending map[string]bool) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
			return false
		}
	}

	if !workspace.IsSourceFile(event.Name) || workspace.IsGeneratedSource(event.Name) {
		return false
	}
	pending[event.Name] = true
	return true
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		return w.notifier.Add(path)
	})
}
