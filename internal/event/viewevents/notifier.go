// Package viewevents broadcasts view events on behalf of any component.
//
// A Notifier keeps producers free of bus details: callers state what
// happened and the notifier builds, logs and posts the matching event.
// Like the bus it wraps, a Notifier must only be used from the UI loop.
package viewevents

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/event"
	"github.com/dshills/walletview/internal/event/events"
)

// Poster is the part of the bus a Notifier needs.
type Poster interface {
	Post(ctx context.Context, evt event.Event)
}

// Notifier posts view events to a bus.
type Notifier struct {
	bus Poster
	log zerolog.Logger
}

// New creates a notifier posting to bus. source identifies the producer in
// debug logs.
func New(bus Poster, source string, log zerolog.Logger) *Notifier {
	return &Notifier{
		bus: bus,
		log: log.With().Str("component", "viewevents").Str("source", source).Logger(),
	}
}

// FireLocaleChanged tells views to rebuild for a new locale.
func (n *Notifier) FireLocaleChanged(ctx context.Context, locale string) {
	n.log.Debug().Str("locale", locale).Msg("firing locale changed")
	n.bus.Post(ctx, events.LocaleChanged{Locale: locale})
}

// FireBalanceChanged updates the balance display.
func (n *Notifier) FireBalanceChanged(ctx context.Context, coin, local events.Money, rateProvider string) {
	n.log.Debug().
		Stringer("coin", coin).
		Stringer("local", local).
		Str("rate_provider", rateProvider).
		Msg("firing balance changed")
	n.bus.Post(ctx, events.BalanceChanged{Coin: coin, Local: local, RateProvider: rateProvider})
}

// FireSystemStatusChanged updates the system status indicator.
func (n *Notifier) FireSystemStatusChanged(ctx context.Context, message string, severity events.RAGStatus) {
	n.log.Debug().Str("message", message).Str("severity", string(severity)).Msg("firing system status changed")
	n.bus.Post(ctx, events.SystemStatusChanged{Message: message, Severity: severity})
}

// FireProgressChanged updates the progress indicator. percent is clamped
// to [0, 100].
func (n *Notifier) FireProgressChanged(ctx context.Context, message string, percent int) {
	switch {
	case percent < 0:
		percent = 0
	case percent > 100:
		percent = 100
	}
	n.log.Debug().Str("message", message).Int("percent", percent).Msg("firing progress changed")
	n.bus.Post(ctx, events.ProgressChanged{Message: message, Percent: percent})
}

// FireAlertAdded shows an alert.
func (n *Notifier) FireAlertAdded(ctx context.Context, alert events.Alert) {
	n.log.Debug().
		Str("message", alert.Message).
		Str("severity", string(alert.Severity)).
		Int("remaining", alert.Remaining).
		Msg("firing alert added")
	n.bus.Post(ctx, events.AlertAdded{Alert: alert})
}

// FireAlertRemoved dismisses the current alert.
func (n *Notifier) FireAlertRemoved(ctx context.Context) {
	n.log.Debug().Msg("firing alert removed")
	n.bus.Post(ctx, events.AlertRemoved{})
}

// FireWizardButtonEnabled enables or disables a wizard button on one panel.
func (n *Notifier) FireWizardButtonEnabled(ctx context.Context, panel string, button events.WizardButton, enabled bool) {
	n.log.Debug().
		Str("panel", panel).
		Str("button", string(button)).
		Bool("enabled", enabled).
		Msg("firing wizard button enabled")
	n.bus.Post(ctx, events.WizardButtonEnabled{Panel: panel, Button: button, Enabled: enabled})
}

// FireComponentChanged reports that a component's model was updated.
func (n *Notifier) FireComponentChanged(ctx context.Context, panel, component, value string) {
	n.log.Debug().Str("panel", panel).Str("component", component).Msg("firing component changed")
	n.bus.Post(ctx, events.ComponentChanged{Panel: panel, Component: component, Value: value})
}

// FireDeviceDisplayVisibility shows or hides the device display on a panel.
func (n *Notifier) FireDeviceDisplayVisibility(ctx context.Context, panel string, visible bool) {
	n.log.Debug().Str("panel", panel).Bool("visible", visible).Msg("firing device display visibility")
	n.bus.Post(ctx, events.DeviceDisplayVisibility{Panel: panel, Visible: visible})
}
