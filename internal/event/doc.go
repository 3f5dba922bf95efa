// Package event provides the in-process event bus that couples wallet views
// to the rest of the application.
//
// Producers post immutable event values; the bus hands each one to every
// interested subscriber without the producer knowing who is listening.
//
// # Architecture
//
//	                ┌──────────────────────────────────────┐
//	                │               Bus                     │
//	                │  - ordered subscriber registry        │
//	                │  - synchronous, in-order delivery     │
//	                │  - per-handler panic/error isolation  │
//	                └──────────────────────────────────────┘
//	                                  │
//	          ┌───────────────────────┼───────────────────────┐
//	          ▼                       ▼                       ▼
//	┌─────────────────┐     ┌─────────────────┐     ┌─────────────────┐
//	│   Subscriber    │     │    Binding      │     │    Metrics      │
//	│  - identity     │     │  - kind →       │     │  - Prometheus   │
//	│  - interest     │     │    handler      │     │    collectors   │
//	└─────────────────┘     └─────────────────┘     └─────────────────┘
//
// # Event Kinds
//
// Every event reports a Kind using dot notation:
//
//	view.progress.changed     - progress bar message and percentage
//	view.wizard.button_enabled - toggle a wizard button on one panel
//	config.changed            - configuration was reloaded
//
// # Basic Usage
//
//	bus := event.NewBus(event.WithLogger(logger))
//
//	sub := event.NewSubscriber("footer",
//	    event.On(func(ctx context.Context, e events.ProgressChanged) error {
//	        footer.SetProgress(e.Message, e.Percent)
//	        return nil
//	    }),
//	)
//	if err := bus.Register(ctx, sub); err != nil {
//	    return err
//	}
//	defer bus.Unregister(ctx, sub)
//
//	bus.Post(ctx, events.ProgressChanged{Message: "Loading", Percent: 42})
//
// # Delivery Order
//
// Subscribers receive events in the order they were registered. Registering
// an ID that is already present replaces the subscriber in place, so its
// position does not change.
//
// # Failure Isolation
//
// A handler that returns an error or panics is logged, counted and reported
// to the optional FailureFunc. Delivery carries on with the next handler.
//
// # Thread Safety
//
// The Bus is not safe for concurrent use. It belongs to the UI loop and every
// call must be made from a task running on that loop. WithConfinement turns
// the convention into a runtime check.
package event
