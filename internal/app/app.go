// Package app wires the wallet views together and drives the create wallet
// wizard against the configured hardware wallet.
package app

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/config"
	"github.com/dshills/walletview/internal/device"
	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/viewevents"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/uiloop"
	"github.com/dshills/walletview/internal/wizard"
	"github.com/dshills/walletview/internal/wizard/welcome"
)

// Options configures application startup.
type Options struct {
	// ConfigPath is the configuration file. A missing file means defaults.
	ConfigPath string

	// LogLevel overrides logging.level when not empty.
	LogLevel string

	// LogOutput receives log output. Defaults to os.Stderr.
	LogOutput io.Writer

	// Watch reloads ConfigPath when it changes on disk.
	Watch bool

	// Display replaces the device display chosen by configuration.
	Display device.Display

	// ShutdownTimeout bounds how long Shutdown waits for the UI loop.
	ShutdownTimeout time.Duration
}

// Result describes how the wizard ended.
type Result struct {
	State          wizard.State
	WalletCreated  bool
	BackupLocation string
}

// Application owns every component of the wallet UI.
type Application struct {
	opts Options
	boot *bootstrapper

	config    *config.Config
	log       zerolog.Logger
	registry  *prometheus.Registry
	loop      *uiloop.Loop
	bus       *event.Bus
	notifier  *viewevents.Notifier
	catalog   *i18n.Catalog
	display   device.Display
	terminal  *device.TerminalDisplay
	simulator *device.Simulator
	model     *welcome.Model
	wizard    *wizard.Wizard
	watcher   *config.Watcher

	statusSub *event.Subscriber
	driverSub *event.Subscriber

	running      atomic.Bool
	results      chan Result
	stopTicker   chan struct{}
	shutdownOnce sync.Once
}

// New creates and initializes an application. Components are built in
// dependency order; a failure tears down what was already built.
func New(opts Options) (*Application, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	app := &Application{
		opts:       opts,
		results:    make(chan Result, 1),
		stopTicker: make(chan struct{}),
	}

	b := newBootstrapper(app, opts)
	if err := b.bootstrap(); err != nil {
		return nil, err
	}
	app.boot = b
	return app, nil
}

// Run starts the UI loop and drives the wizard until it closes or ctx is
// cancelled.
func (app *Application) Run(ctx context.Context) (Result, error) {
	if !app.running.CompareAndSwap(false, true) {
		return Result{}, ErrAlreadyRunning
	}

	go func() {
		if err := app.loop.Run(ctx); err != nil && ctx.Err() == nil {
			app.log.Error().Err(err).Msg("ui loop stopped")
		}
	}()

	var startErr error
	if err := app.loop.Invoke(ctx, func(ctx context.Context) {
		startErr = app.start(ctx)
	}); err != nil {
		return Result{}, err
	}
	if startErr != nil {
		return Result{}, startErr
	}

	select {
	case res := <-app.results:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Shutdown stops the UI loop and releases every component. It is safe to
// call more than once.
func (app *Application) Shutdown() error {
	var err error
	app.shutdownOnce.Do(func() {
		if app.running.Load() {
			_ = app.loop.Invoke(context.Background(), app.closeUI)
			app.loop.Stop()
			select {
			case <-app.loop.Done():
			case <-time.After(app.opts.ShutdownTimeout):
				err = ErrShutdownTimeout
			}
		}
		app.boot.cleanup()
		app.log.Info().Msg("shutdown complete")
	})
	return err
}

// Config returns the configuration in effect at startup.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the root logger.
func (app *Application) Logger() zerolog.Logger {
	return app.log
}

// Loop returns the UI loop.
func (app *Application) Loop() *uiloop.Loop {
	return app.loop
}

// Bus returns the event bus. Use it from UI loop tasks only.
func (app *Application) Bus() *event.Bus {
	return app.bus
}

// Catalog returns the message catalog.
func (app *Application) Catalog() *i18n.Catalog {
	return app.catalog
}

// Wizard returns the create wallet wizard.
func (app *Application) Wizard() *wizard.Wizard {
	return app.wizard
}

// Gatherer returns the metrics registry, or nil when metrics are disabled.
func (app *Application) Gatherer() prometheus.Gatherer {
	if app.registry == nil {
		return nil
	}
	return app.registry
}
