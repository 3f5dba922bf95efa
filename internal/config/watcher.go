package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ReloadFunc receives a reloaded configuration and the settings that
// changed. It runs on the watcher goroutine.
type ReloadFunc func(cfg *Config, changed []string)

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must be quiet before reloading.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the logger.
func WithWatcherLogger(log zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.log = log
	}
}

// WithEnv sets the environment used for overrides on reload.
func WithEnv(lookup LookupFunc) WatcherOption {
	return func(w *Watcher) {
		w.lookup = lookup
	}
}

// WithErrorHandler sets a callback for reload and watch errors.
func WithErrorHandler(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher reloads a configuration file when it changes.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onReload ReloadFunc
	onError  func(error)
	debounce time.Duration
	lookup   LookupFunc
	log      zerolog.Logger

	mu      sync.Mutex
	current *Config

	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher starts watching path. current is the configuration in effect;
// reloads report their changes relative to it.
func NewWatcher(path string, current *Config, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		onReload: onReload,
		debounce: 100 * time.Millisecond,
		lookup:   os.LookupEnv,
		log:      zerolog.Nop(),
		current:  current,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = w.log.With().Str("component", "config_watcher").Str("path", abs).Logger()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file, so watch its directory.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.run()

	w.log.Debug().Msg("watching configuration")
	return w, nil
}

// Current returns the configuration in effect.
func (w *Watcher) Current() *Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close stops watching. Close is idempotent.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.closeCh)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var pending <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				pending = time.After(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)

		case <-pending:
			pending = nil
			w.reload()

		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) reload() {
	if _, err := os.Stat(w.path); err != nil {
		// Mid-replace; the create event will follow.
		return
	}

	cfg, err := LoadWithEnv(w.path, w.lookup)
	if err != nil {
		w.fail(err)
		return
	}

	w.mu.Lock()
	changed := w.current.Diff(cfg)
	if len(changed) > 0 {
		w.current = cfg
	}
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	w.log.Info().Strs("changed", changed).Msg("configuration reloaded")
	if w.onReload != nil {
		w.onReload(cfg, changed)
	}
}

func (w *Watcher) fail(err error) {
	w.log.Warn().Err(err).Msg("configuration reload failed")
	if w.onError != nil {
		w.onError(err)
	}
}
