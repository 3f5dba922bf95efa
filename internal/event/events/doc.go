// Package events defines the event values posted on the wallet view bus.
//
// Each event type has a kind constant and a payload struct. Kinds follow a
// dot notation grouped by source:
//
//   - View events: locale, balance, system status, progress, alerts
//   - Wizard events: button toggles, component changes, device display
//   - Config events: configuration reloads
//
// # Usage
//
//	notifier.FireProgressChanged(ctx, "Loading", 42)
//
// or, without the facade:
//
//	bus.Post(ctx, events.ProgressChanged{Message: "Loading", Percent: 42})
//
// Kind methods use value receivers so the zero value of every event type can
// be asked for its kind when building typed bindings with event.On.
package events
