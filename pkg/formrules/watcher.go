package formrules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/adoptmenow/formvalidation/pkg/debounce"
	"github.com/adoptmenow/formvalidation/pkg/logger"
)

// DefaultReloadDelay is how long the watcher waits for writes to settle.
const DefaultReloadDelay = 100 * time.Millisecond

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

func WithReloadDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithWatcherScheduler sets the clock of the reload debounce.
func WithWatcherScheduler(s debounce.Scheduler) WatcherOption {
	return func(w *Watcher) {
		if s != nil {
			w.sched = s
		}
	}
}

// OnReload registers fn to receive the outcome of every reload.
func OnReload(fn func(error)) WatcherOption {
	return func(w *Watcher) { w.onReload = fn }
}

// Watcher reloads a Store when its presets file changes. Bursts of events are
// collapsed into one reload. A file that fails to load leaves the previous
// presets active.
type Watcher struct {
	store    *Store
	path     string
	delay    time.Duration
	sched    debounce.Scheduler
	onReload func(error)
	log      *slog.Logger

	fsw *fsnotify.Watcher
	deb *debounce.Debouncer

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	stop    sync.Once
}

func NewWatcher(store *Store, path string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		store:  store,
		path:   filepath.Clean(path),
		delay:  DefaultReloadDelay,
		sched:  debounce.RealTime{},
		log:    logger.Discard(),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating presets watcher: %w", err)
	}
	w.fsw = fsw
	w.deb = debounce.New(w.sched, w.delay)
	return w, nil
}

// Run watches the file until ctx is done or Stop is called. The directory is
// watched rather than the file so editors that replace the file by rename keep
// triggering reloads.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrWatcherRunning
	}
	w.running = true
	w.mu.Unlock()
	defer close(w.doneCh)

	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", w.path, err)
	}
	w.log.InfoContext(ctx, "presets watcher started", logger.Path(w.path))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("presets watcher stopped")
			return nil
		case <-w.stopCh:
			w.log.Info("presets watcher stopped")
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("presets watcher events channel closed")
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("presets file event", logger.Path(ev.Name), slog.String("op", ev.Op.String()))
			w.deb.Trigger(w.reload)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("presets watcher errors channel closed")
			}
			w.log.Error("presets watcher error", logger.Error(err))
		}
	}
}

// Stop ends Run, cancels a pending reload and releases the file watch.
func (w *Watcher) Stop() error {
	var err error
	w.stop.Do(func() {
		close(w.stopCh)
		w.mu.Lock()
		running := w.running
		w.mu.Unlock()
		if running {
			<-w.doneCh
		}
		w.deb.Stop()
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return filepath.Clean(ev.Name) == w.path
}

func (w *Watcher) reload() {
	err := w.store.ReloadFile(w.path)
	if err != nil {
		w.log.Error("presets reload failed", logger.Path(w.path), logger.Error(err))
	} else {
		w.log.Info("presets reloaded", logger.Path(w.path), slog.Any("presets", w.store.Names()))
	}
	if w.onReload != nil {
		w.onReload(err)
	}
}
