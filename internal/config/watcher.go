package config

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/chordmap/internal/schedule"
)

// DefaultReloadDelay is the quiet period before a reload fires. Editors
// often write a file in several steps.
const DefaultReloadDelay = 150 * time.Millisecond

// ReloadFunc receives the files changed since the last reload.
type ReloadFunc func(changed []string)

// Watcher reports changes to keymap and script files.
//
// Directories are watched rather than files, so a file replaced by an
// atomic rename keeps being observed. The reload callback is posted
// through a schedule.Poster and runs on the loop goroutine.
type Watcher struct {
	mu sync.Mutex

	fsw      *fsnotify.Watcher
	files    map[string]bool
	dirs     map[string]bool
	changed  map[string]bool
	debounce *schedule.Debouncer
	onErr    func(error)

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcherConfig)

type watcherConfig struct {
	delay time.Duration
	onErr func(error)
}

// WithReloadDelay sets the debounce delay.
func WithReloadDelay(d time.Duration) WatcherOption {
	return func(c *watcherConfig) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithErrorHandler sets the function receiving fsnotify errors.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(c *watcherConfig) {
		c.onErr = fn
	}
}

// NewWatcher creates a watcher that posts reload to p after changes.
func NewWatcher(p schedule.Poster, reload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	cfg := watcherConfig{delay: DefaultReloadDelay}
	for _, opt := range opts {
		opt(&cfg)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		changed: make(map[string]bool),
		onErr:   cfg.onErr,
		closeCh: make(chan struct{}),
	}
	w.debounce = schedule.NewDebouncer(cfg.delay, p, func() {
		if changed := w.takeChanged(); len(changed) > 0 && reload != nil {
			reload(changed)
		}
	})

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Watch adds a file. The file need not exist yet, but its directory must.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}

	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	return nil
}

// WatchAll adds every path, stopping at the first error.
func (w *Watcher) WatchAll(paths []string) error {
	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			return err
		}
	}
	return nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	files := make([]string, 0, len(w.files))
	for f := range w.files {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// Close stops watching. It is safe to call Close multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	w.debounce.Cancel()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.onErr != nil {
				w.onErr(err)
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Rename) && !ev.Op.Has(fsnotify.Remove) {
		return
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	watched := w.files[abs]
	if watched {
		w.changed[abs] = true
	}
	w.mu.Unlock()

	if watched {
		w.debounce.Call()
	}
}

func (w *Watcher) takeChanged() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := make([]string, 0, len(w.changed))
	for f := range w.changed {
		changed = append(changed, f)
	}
	clear(w.changed)
	slices.Sort(changed)
	return changed
}
