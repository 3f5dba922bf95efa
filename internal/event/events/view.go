package events

import (
	"github.com/shopspring/decimal"

	"github.com/dshills/walletview/internal/event"
)

// View event kinds.
const (
	// KindLocaleChanged is posted after the active locale changes.
	KindLocaleChanged event.Kind = "view.locale.changed"

	// KindBalanceChanged is posted when the wallet balance or exchange rate changes.
	KindBalanceChanged event.Kind = "view.balance.changed"

	// KindSystemStatusChanged is posted when the overall system status changes.
	KindSystemStatusChanged event.Kind = "view.system_status.changed"

	// KindProgressChanged is posted to update the progress indicator.
	KindProgressChanged event.Kind = "view.progress.changed"

	// KindAlertAdded is posted when a new alert should be shown.
	KindAlertAdded event.Kind = "view.alert.added"

	// KindAlertRemoved is posted when the current alert is dismissed.
	KindAlertRemoved event.Kind = "view.alert.removed"
)

// RAGStatus is a red/amber/green severity.
type RAGStatus string

// Severities, most severe first.
const (
	StatusRed   RAGStatus = "red"
	StatusAmber RAGStatus = "amber"
	StatusGreen RAGStatus = "green"
	StatusEmpty RAGStatus = "empty"
)

// Money is an amount in a named currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// String formats the amount followed by the currency code.
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

// LocaleChanged is posted after the active locale changes.
// Views rebuild their panels so that new text is picked up.
type LocaleChanged struct {
	// Locale is the BCP 47 tag now in effect.
	Locale string
}

// Kind implements event.Event.
func (LocaleChanged) Kind() event.Kind { return KindLocaleChanged }

// BalanceChanged carries the wallet balance in coin and local currency.
type BalanceChanged struct {
	Coin  Money
	Local Money

	// RateProvider names the exchange rate source (e.g. "Bitstamp").
	RateProvider string
}

// Kind implements event.Event.
func (BalanceChanged) Kind() event.Kind { return KindBalanceChanged }

// SystemStatusChanged carries a localized message and its severity.
type SystemStatusChanged struct {
	Message  string
	Severity RAGStatus
}

// Kind implements event.Event.
func (SystemStatusChanged) Kind() event.Kind { return KindSystemStatusChanged }

// ProgressChanged carries a localized message and a percentage.
type ProgressChanged struct {
	Message string
	Percent int
}

// Kind implements event.Event.
func (ProgressChanged) Kind() event.Kind { return KindProgressChanged }

// Alert is the content of an alert bar.
type Alert struct {
	Message  string
	Severity RAGStatus

	// Remaining is the number of further alerts queued behind this one.
	Remaining int
}

// AlertAdded is posted when a new alert should be shown.
type AlertAdded struct {
	Alert Alert
}

// Kind implements event.Event.
func (AlertAdded) Kind() event.Kind { return KindAlertAdded }

// AlertRemoved is posted when the current alert is dismissed.
type AlertRemoved struct{}

// Kind implements event.Event.
func (AlertRemoved) Kind() event.Kind { return KindAlertRemoved }
