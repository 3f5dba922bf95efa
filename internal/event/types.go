package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind is the discriminant carried by every event value.
// Kinds use hierarchical dot notation, e.g. "view.progress.changed".
type Kind string

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// Event is implemented by every value posted on the bus.
//
// Kind must be declared on a value receiver so that the zero value of an
// event type can report its kind without dereferencing a nil pointer.
type Event interface {
	Kind() Kind
}

// Scoped is implemented by events addressed to the components of a single
// panel, such as wizard button toggles.
type Scoped interface {
	Event
	PanelName() string
}

// Handler processes a delivered event.
type Handler interface {
	Handle(ctx context.Context, evt Event) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, evt Event) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// FilterFunc is a predicate for filtering events.
// Return true to allow the event, false to filter it out.
type FilterFunc func(evt Event) bool

// ScopedTo returns an interest predicate for a component living inside the
// named panel. Unscoped events always pass; scoped events pass only when
// they are addressed to panelName.
func ScopedTo(panelName string) FilterFunc {
	return func(evt Event) bool {
		s, ok := evt.(Scoped)
		if !ok {
			return true
		}
		return s.PanelName() == panelName
	}
}

// Delivery describes a single Post call. Handlers read it from their
// context with DeliveryFrom.
type Delivery struct {
	// ID uniquely identifies the post.
	ID uuid.UUID

	// Kind is the kind of the posted event.
	Kind Kind

	// PostedAt is when Post was called.
	PostedAt time.Time

	// Depth is 1 for a top-level post and grows when handlers post re-entrantly.
	Depth int
}

type deliveryKey struct{}

// DeliveryFrom returns the delivery in progress for ctx.
func DeliveryFrom(ctx context.Context) (Delivery, bool) {
	d, ok := ctx.Value(deliveryKey{}).(Delivery)
	return d, ok
}

func withDelivery(ctx context.Context, d Delivery) context.Context {
	return context.WithValue(ctx, deliveryKey{}, d)
}

// Stats contains event bus statistics.
type Stats struct {
	// EventsPosted is the total number of events posted.
	EventsPosted uint64

	// EventsDelivered is the number of successful handler invocations.
	EventsDelivered uint64

	// EventsDropped is the number of events posted to a closed bus.
	EventsDropped uint64

	// HandlerErrors is the number of handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of handlers that panicked.
	HandlerPanics uint64

	// ConfinementViolations counts calls made off the UI loop.
	ConfinementViolations uint64

	// ActiveSubscribers is the current number of registered subscribers.
	ActiveSubscribers int
}
