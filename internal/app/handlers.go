package app

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dshills/walletview/internal/config"
	"github.com/dshills/walletview/internal/device"
	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/events"
	"github.com/dshills/walletview/internal/i18n"
	"github.com/dshills/walletview/internal/wizard"
	"github.com/dshills/walletview/internal/wizard/welcome"
)

// Subscriber IDs owned by the application.
const (
	statusSubscriberID = "app.status"
	driverSubscriberID = "app.driver"
)

// start runs on the UI loop. It selects the configured locale, shows the
// wizard and accepts the proposed backup location.
func (app *Application) start(ctx context.Context) error {
	for _, sub := range []*event.Subscriber{app.statusSub, app.driverSub} {
		if err := app.bus.Register(ctx, sub); err != nil {
			return err
		}
	}

	app.notifier.FireProgressChanged(ctx, app.catalog.Lookup(i18n.ProgressLoading), 0)
	if _, err := app.catalog.SetLocale(ctx, app.config.Appearance.Locale); err != nil {
		return err
	}

	if err := app.wizard.Start(ctx); err != nil {
		return err
	}
	if _, err := app.wizard.Press(ctx, wizard.ButtonNext); err != nil {
		return err
	}
	// The confirm panel holds this move until the device answers.
	if _, err := app.wizard.Next(ctx); err != nil {
		return err
	}
	app.notifier.FireProgressChanged(ctx, app.catalog.Lookup(i18n.ProgressLoading), 50)
	return nil
}

// closeUI cancels a wizard that is still open and drops the application
// subscribers. UI loop only.
func (app *Application) closeUI(ctx context.Context) {
	if app.wizard.State() == wizard.StateShowing {
		if _, err := app.wizard.Cancel(ctx); err != nil {
			app.log.Warn().Err(err).Msg("cancel wizard")
		}
	}
	app.bus.UnregisterID(ctx, driverSubscriberID)
	app.bus.UnregisterID(ctx, statusSubscriberID)
}

func (app *Application) onWizardClosed(ctx context.Context, state wizard.State) {
	app.notifier.FireProgressChanged(ctx, app.catalog.Lookup(i18n.ProgressDone), 100)
	if app.model.WalletCreated {
		// A freshly created wallet is empty.
		zero := decimal.Zero
		app.notifier.FireBalanceChanged(ctx,
			events.Money{Amount: zero, Currency: "BTC"},
			events.Money{Amount: zero, Currency: "EUR"},
			"")
	}

	res := Result{
		State:          state,
		WalletCreated:  app.model.WalletCreated,
		BackupLocation: app.model.BackupLocation,
	}
	select {
	case app.results <- res:
	default:
	}
}

// newDriverSubscriber reacts to the confirm panel's button changes, which
// follow the device's answer.
func (app *Application) newDriverSubscriber() *event.Subscriber {
	return event.NewSubscriber(driverSubscriberID,
		event.WithInterest(event.ScopedTo(welcome.PanelConfirmCreateWallet)),
		event.On(func(_ context.Context, e events.WizardButtonEnabled) error {
			if !e.Enabled {
				return nil
			}
			switch e.Button {
			case wizard.ButtonNext:
				return app.loop.Post(app.completeWizard)
			case wizard.ButtonExit:
				return app.loop.Post(app.abandonWizard)
			}
			return nil
		}),
	)
}

// completeWizard performs the move the confirm panel deferred and finishes
// on the report.
func (app *Application) completeWizard(ctx context.Context) {
	ok, err := app.wizard.Retry(ctx)
	if err != nil || !ok {
		app.log.Warn().Err(err).Bool("moved", ok).Msg("deferred move not completed")
		return
	}
	if _, err := app.wizard.Press(ctx, wizard.ButtonFinish); err != nil {
		app.log.Warn().Err(err).Msg("finish wizard")
	}
}

func (app *Application) abandonWizard(ctx context.Context) {
	if app.wizard.State() != wizard.StateShowing {
		return
	}
	if _, err := app.wizard.Press(ctx, wizard.ButtonExit); err != nil {
		app.log.Warn().Err(err).Msg("exit wizard")
	}
}

// newStatusSubscriber logs what a footer, alert bar and balance header
// would show.
func (app *Application) newStatusSubscriber() *event.Subscriber {
	log := app.log.With().Str("component", "status").Logger()
	return event.NewSubscriber(statusSubscriberID,
		event.On(func(_ context.Context, e events.ProgressChanged) error {
			log.Info().Int("percent", e.Percent).Msg(e.Message)
			return nil
		}),
		event.On(func(_ context.Context, e events.SystemStatusChanged) error {
			log.Info().Str("severity", string(e.Severity)).Msg(e.Message)
			return nil
		}),
		event.On(func(_ context.Context, e events.AlertAdded) error {
			log.Warn().Str("severity", string(e.Alert.Severity)).Int("remaining", e.Alert.Remaining).Msg(e.Alert.Message)
			return nil
		}),
		event.On(func(_ context.Context, e events.BalanceChanged) error {
			log.Info().Stringer("coin", e.Coin).Stringer("local", e.Local).Msg("balance changed")
			return nil
		}),
		event.On(func(_ context.Context, e events.LocaleChanged) error {
			log.Info().Str("locale", e.Locale).Msg("locale changed")
			return nil
		}),
		event.On(func(_ context.Context, e events.ConfigChanged) error {
			log.Info().Strs("changed", e.Changed).Msg("configuration changed")
			return nil
		}),
	)
}

// onConfigReload runs on the watcher goroutine and hands the new
// configuration to the UI loop.
func (app *Application) onConfigReload(cfg *config.Config, changed []string) {
	err := app.loop.Post(func(ctx context.Context) {
		app.applyConfig(ctx, cfg, changed)
	})
	if err != nil {
		app.log.Warn().Err(err).Msg("configuration reload not applied")
	}
}

func (app *Application) onConfigError(err error) {
	msg := err.Error()
	if postErr := app.loop.Post(func(ctx context.Context) {
		app.notifier.FireSystemStatusChanged(ctx, msg, events.StatusRed)
	}); postErr != nil {
		app.log.Warn().Err(postErr).Msg("configuration error not reported")
	}
}

// applyConfig applies the settings that can change while running and
// raises an alert for the rest. UI loop only.
func (app *Application) applyConfig(ctx context.Context, cfg *config.Config, changed []string) {
	var restart []string
	for _, setting := range changed {
		switch setting {
		case "appearance.locale":
			if _, err := app.catalog.SetLocale(ctx, cfg.Appearance.Locale); err != nil {
				app.log.Warn().Err(err).Msg("locale not applied")
			}
		case "device.outcome":
			outcome, err := device.ParseOutcome(cfg.Device.Outcome)
			if err != nil {
				app.log.Warn().Err(err).Msg("device outcome not applied")
				continue
			}
			app.simulator.SetOutcome(outcome)
		default:
			restart = append(restart, setting)
		}
	}

	app.bus.Post(ctx, events.ConfigChanged{Path: app.opts.ConfigPath, Changed: changed})
	app.notifier.FireSystemStatusChanged(ctx, app.catalog.Lookup(i18n.StatusConfigLoad), events.StatusGreen)
	if len(restart) > 0 {
		app.notifier.FireAlertAdded(ctx, events.Alert{
			Message:  app.catalog.Lookup(i18n.RestartRequired, strings.Join(restart, ", ")),
			Severity: events.StatusAmber,
		})
	}
}

// tickSpinner animates the terminal device spinner until shutdown.
func (app *Application) tickSpinner(term *device.TerminalDisplay, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-app.stopTicker:
			return
		case <-ticker.C:
			term.Tick()
		}
	}
}
