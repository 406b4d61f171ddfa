package stylesheet

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/slate/pkg/telemetry"
)

// debounceWindow coalesces the burst of events editors emit per save.
const debounceWindow = 50 * time.Millisecond

// Watcher reloads stylesheet files into a Registry when they change on
// disk. Watching the parent directory instead of the file itself survives
// the rename-over-save dance most editors do.
type Watcher struct {
	registry *Registry
	hub      *telemetry.Hub
	fs       *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool

	done chan struct{}
	once sync.Once
}

// NewWatcher starts a watcher feeding reg. hub may be nil.
func NewWatcher(reg *Registry, hub *telemetry.Hub) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("stylesheet watcher: %w", err)
	}
	w := &Watcher{
		registry: reg,
		hub:      hub,
		fs:       fs,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch loads path immediately and reloads it on every change.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("stylesheet watcher: %w", err)
	}
	if err := w.registry.LoadFile(abs); err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	w.mu.Lock()
	w.files[abs] = true
	needAdd := !w.dirs[dir]
	if needAdd {
		w.dirs[dir] = true
	}
	w.mu.Unlock()

	if needAdd {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("stylesheet watcher: %w", err)
		}
	}
	return nil
}

// Close stops the watcher. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.fs.Close()
}

func (w *Watcher) run() {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			w.mu.Lock()
			watched := w.files[abs]
			w.mu.Unlock()
			if !watched {
				continue
			}
			pending[abs] = true
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
			} else {
				timer.Reset(debounceWindow)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			for path := range pending {
				delete(pending, path)
				if err := w.registry.LoadFile(path); err != nil {
					// The file may be mid-rewrite; the next event retries.
					continue
				}
				w.hub.Emit(telemetry.EventStylesheetReload, path, nil)
			}
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}
