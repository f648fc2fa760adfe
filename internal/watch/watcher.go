// Package watch triggers re-execution of a unit of work when files in
// a problem directory change.
//
// The watcher batches filesystem events with a debounce interval and
// invokes its callback once per quiet period. The callback is expected
// to start a fresh runtime invocation; no execution context is ever
// shared between triggers.
package watch

import (
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch is delivered.
const DefaultDebounce = 200 * time.Millisecond

// Watcher delivers debounced batches of changed paths.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	fn       func(paths []string)

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once

	mu      sync.Mutex
	lastErr error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a batch is delivered. A
// non-positive duration keeps DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher delivering batches to fn and starts its event
// loop.
func New(fn func(paths []string), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		debounce: DefaultDebounce,
		fn:       fn,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Add starts watching a path (a directory watches its direct entries).
func (w *Watcher) Add(path string) error {
	return w.fsw.Add(path)
}

// LastErr returns the most recent watch error, if any.
func (w *Watcher) LastErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Close stops the watcher and waits for the event loop to exit. No
// callback runs after Close returns.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[ev.Name] = struct{}{}
			// Restart the quiet period on every event so a burst of
			// writes becomes one batch.
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case <-timerC:
			batch := make([]string, 0, len(pending))
			for path := range pending {
				batch = append(batch, path)
			}
			sort.Strings(batch)
			pending = make(map[string]struct{})
			timer = nil
			timerC = nil
			w.fn(batch)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.lastErr = err
			w.mu.Unlock()
		}
	}
}
