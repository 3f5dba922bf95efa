package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/walletview/internal/config"
	"github.com/dshills/walletview/internal/device"
	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/viewevents"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/uiloop"
	"github.com/dshills/walletview/internal/wizard"
	"github.com/dshills/walletview/internal/wizard/welcome"
)

// spinnerInterval is the frame time of the terminal device spinner.
const spinnerInterval = 120 * time.Millisecond

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 10),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,   // 1. settings everything else reads
		b.initLogger,   // 2. root logger
		b.initMetrics,  // 3. optional Prometheus registry
		b.initLoop,     // 4. UI loop
		b.initEventBus, // 5. bus confined to the loop
		b.initNotifier, // 6. view event helpers
		b.initCatalog,  // 7. messages, notifies locale changes
		b.initDevice,   // 8. display and confirmer
		b.initWizard,   // 9. create wallet wizard
		b.initWatcher,  // 10. live configuration reload
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initConfig loads the configuration file and applies overrides.
func (b *bootstrapper) initConfig() error {
	cfg := config.Default()
	if b.opts.ConfigPath != "" {
		loaded, err := config.Load(b.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger builds the root logger.
func (b *bootstrapper) initLogger() error {
	log, err := NewLogger(b.app.config.Logging, b.opts.LogOutput)
	if err != nil {
		return &InitError{Component: "logger", Err: err}
	}
	b.app.log = log
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initMetrics creates a private registry when metrics are enabled.
func (b *bootstrapper) initMetrics() error {
	if b.app.config.Metrics.Enabled {
		b.app.registry = prometheus.NewRegistry()
	}
	b.initOrder = append(b.initOrder, "metrics")
	return nil
}

// initLoop creates the UI loop. It is started by Run.
func (b *bootstrapper) initLoop() error {
	cfg := b.app.config.UI
	opts := []uiloop.Option{
		uiloop.WithQueueSize(cfg.QueueSize),
		uiloop.WithStrict(cfg.StrictThreadChecks),
		uiloop.WithLogger(b.app.log.With().Str("component", "ui_loop").Logger()),
	}
	if b.app.registry != nil {
		opts = append(opts, uiloop.WithMetrics(b.app.registry))
	}
	b.app.loop = uiloop.New(opts...)
	b.initOrder = append(b.initOrder, "loop")
	return nil
}

// initEventBus creates the event bus and ties it to the UI loop.
func (b *bootstrapper) initEventBus() error {
	opts := []event.BusOption{
		event.WithLogger(b.app.log.With().Str("component", "event_bus").Logger()),
		event.WithConfinement(b.app.loop, b.app.config.UI.StrictThreadChecks),
	}
	if b.app.registry != nil {
		opts = append(opts, event.WithMetrics(event.NewMetrics(b.app.registry)))
	}
	b.app.bus = event.NewBus(opts...)
	b.initOrder = append(b.initOrder, "eventBus")
	return nil
}

// initNotifier creates the view event helpers used by the application.
func (b *bootstrapper) initNotifier() error {
	b.app.notifier = viewevents.New(b.app.bus, "app", b.app.log)
	b.initOrder = append(b.initOrder, "notifier")
	return nil
}

// initCatalog loads the embedded message bundles. The configured locale is
// selected on the UI loop by Run, so the change can be announced.
func (b *bootstrapper) initCatalog() error {
	catalog, err := i18n.Load(
		i18n.WithNotifier(b.app.notifier),
		i18n.WithLogger(b.app.log),
	)
	if err != nil {
		return &InitError{Component: "i18n", Err: err}
	}
	b.app.catalog = catalog
	b.initOrder = append(b.initOrder, "catalog")
	return nil
}

// initDevice sets up the device display and the simulated confirmer.
func (b *bootstrapper) initDevice() error {
	cfg := b.app.config.Device

	outcome, err := device.ParseOutcome(cfg.Outcome)
	if err != nil {
		return &InitError{Component: "device", Err: err}
	}

	switch {
	case b.opts.Display != nil:
		b.app.display = b.opts.Display
	case cfg.Terminal:
		term, err := device.NewTerminalDisplay()
		if err != nil {
			return &InitError{Component: "device", Err: err}
		}
		if err := term.Init(); err != nil {
			return &InitError{Component: "device", Err: err}
		}
		b.app.terminal = term
		b.app.display = term
		go b.app.tickSpinner(term, spinnerInterval)
	default:
		b.app.display = device.NewLogDisplay(b.app.log)
	}

	b.app.simulator = device.NewSimulator(
		device.WithDelay(time.Duration(cfg.ConfirmDelayMS)*time.Millisecond),
		device.WithOutcome(outcome),
		device.WithSimulatorLogger(b.app.log),
	)
	b.initOrder = append(b.initOrder, "device")
	return nil
}

// initWizard builds the create wallet wizard and the application subscribers.
func (b *bootstrapper) initWizard() error {
	app := b.app
	env := wizard.Env{
		Bus:       app.bus,
		Loop:      app.loop,
		Notifier:  viewevents.New(app.bus, "wizard", app.log),
		Localizer: app.catalog,
		Logger:    app.log,
	}

	app.model = &welcome.Model{}
	w, err := wizard.New(env,
		welcome.NewSelectBackupLocationPanel(env, app.model, app.config.Appearance.CloudBackupLocation),
		welcome.NewConfirmCreateWalletPanel(env, app.model, app.display, app.simulator),
		welcome.NewReportPanel(env, app.model, app.config.Device.Name),
	)
	if err != nil {
		return &InitError{Component: "wizard", Err: err}
	}
	w.OnClose(app.onWizardClosed)
	app.wizard = w

	app.statusSub = app.newStatusSubscriber()
	app.driverSub = app.newDriverSubscriber()
	b.initOrder = append(b.initOrder, "wizard")
	return nil
}

// initWatcher starts watching the configuration file when asked to.
func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch || b.opts.ConfigPath == "" {
		return nil
	}
	w, err := config.NewWatcher(b.opts.ConfigPath, b.app.config, b.app.onConfigReload,
		config.WithWatcherLogger(b.app.log),
		config.WithErrorHandler(b.app.onConfigError),
	)
	if err != nil {
		return &InitError{Component: "config watcher", Err: err}
	}
	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
	b.initOrder = b.initOrder[:0]
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "watcher":
		if b.app.watcher != nil {
			if err := b.app.watcher.Close(); err != nil {
				b.app.log.Warn().Err(err).Msg("closing config watcher")
			}
			b.app.watcher = nil
		}
	case "device":
		if b.app.simulator != nil {
			b.app.simulator.Close()
		}
		if b.app.terminal != nil {
			close(b.app.stopTicker)
			b.app.terminal.Shutdown()
			b.app.terminal = nil
		}
	case "eventBus":
		if b.app.bus != nil {
			b.app.bus.Close()
		}
	case "loop":
		if b.app.loop != nil {
			b.app.loop.Stop()
		}
	}
}
