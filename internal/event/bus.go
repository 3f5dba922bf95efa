package event

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Bus delivers typed events from producers to registered subscribers.
//
// Delivery is synchronous, in registration order, on the goroutine that
// calls Post. The bus takes no locks: Post, Register and Unregister are
// meant to be called from the UI loop only. Configure WithConfinement to
// have that checked.
type Bus struct {
	registry *Registry
	config   busConfig
	closed   bool

	// Stats are read from metrics scrapes and tests, so they stay atomic
	// even though the bus itself is single-threaded.
	eventsPosted    atomic.Uint64
	eventsDelivered atomic.Uint64
	eventsDropped   atomic.Uint64
	handlerErrors   atomic.Uint64
	handlerPanics   atomic.Uint64
	violations      atomic.Uint64
	subscriberCount atomic.Int64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &Bus{
		registry: NewRegistry(),
		config:   config,
	}
}

// Register adds sub to the bus. Registering an ID that is already present
// replaces the old registration but keeps its place in delivery order.
func (b *Bus) Register(ctx context.Context, sub *Subscriber) error {
	b.checkConfinement(ctx, "register")

	if b.closed {
		return ErrBusClosed
	}
	if sub == nil {
		return ErrNilSubscriber
	}
	if len(sub.bindings) == 0 {
		return ErrNoBindings
	}

	replaced := b.registry.Add(sub)
	b.updateSubscriberCount()

	b.config.logger.Debug().
		Str("subscriber", sub.ID()).
		Bool("replaced", replaced).
		Int("subscribers", b.registry.Count()).
		Msg("subscriber registered")
	return nil
}

// Unregister removes sub from the bus. Unregistering a subscriber that is
// not registered is a no-op.
func (b *Bus) Unregister(ctx context.Context, sub *Subscriber) {
	if sub == nil {
		return
	}
	b.UnregisterID(ctx, sub.ID())
}

// UnregisterID removes the subscriber registered under id, if any.
func (b *Bus) UnregisterID(ctx context.Context, id string) {
	b.checkConfinement(ctx, "unregister")

	if !b.registry.Remove(id) {
		return
	}
	b.updateSubscriberCount()

	b.config.logger.Debug().
		Str("subscriber", id).
		Int("subscribers", b.registry.Count()).
		Msg("subscriber unregistered")
}

// IsRegistered reports whether a subscriber with the given ID is registered.
func (b *Bus) IsRegistered(id string) bool {
	return b.registry.Contains(id)
}

// Post delivers evt to every subscriber interested in it, in registration
// order. A handler that returns an error or panics is logged and counted;
// the remaining subscribers still receive the event. A subscriber whose
// interest predicate panics is skipped and reported the same way.
//
// The recipients are fixed when Post is called. Subscribers registered or
// unregistered by a handler during delivery only affect later posts.
func (b *Bus) Post(ctx context.Context, evt Event) {
	b.checkConfinement(ctx, "post")

	if evt == nil {
		b.config.logger.Warn().Msg("ignoring nil event")
		return
	}
	if b.closed {
		b.eventsDropped.Add(1)
		b.config.logger.Debug().Str("kind", evt.Kind().String()).Msg("event dropped, bus closed")
		return
	}

	b.eventsPosted.Add(1)
	b.config.metrics.observePost(evt.Kind())

	subs, faults := b.registry.match(evt)
	if len(subs) == 0 && len(faults) == 0 {
		return
	}

	delivery := Delivery{
		ID:       uuid.New(),
		Kind:     evt.Kind(),
		PostedAt: time.Now(),
		Depth:    1,
	}
	if parent, ok := DeliveryFrom(ctx); ok {
		delivery.Depth = parent.Depth + 1
	}
	ctx = withDelivery(ctx, delivery)

	// Predicates ran before any handler, so their failures are reported first.
	for _, f := range faults {
		b.config.metrics.observeResult(evt.Kind(), f.res)
		b.reportFailure(ctx, delivery, f.sub, f.res)
	}

	for _, sub := range subs {
		for _, h := range sub.handlers(evt.Kind()) {
			res := execute(ctx, evt, h)
			b.config.metrics.observeResult(evt.Kind(), res)
			if res.ok() {
				b.eventsDelivered.Add(1)
				continue
			}
			b.reportFailure(ctx, delivery, sub, res)
		}
	}
}

// Close removes every subscriber. Later posts are dropped and later
// registrations fail with ErrBusClosed. Close is idempotent.
func (b *Bus) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.registry.Clear()
	b.updateSubscriberCount()
	b.config.logger.Debug().Msg("event bus closed")
}

// IsClosed reports whether Close has been called.
func (b *Bus) IsClosed() bool {
	return b.closed
}

// Stats returns current bus statistics.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPosted:          b.eventsPosted.Load(),
		EventsDelivered:       b.eventsDelivered.Load(),
		EventsDropped:         b.eventsDropped.Load(),
		HandlerErrors:         b.handlerErrors.Load(),
		HandlerPanics:         b.handlerPanics.Load(),
		ConfinementViolations: b.violations.Load(),
		ActiveSubscribers:     int(b.subscriberCount.Load()),
	}
}

func (b *Bus) reportFailure(ctx context.Context, d Delivery, sub *Subscriber, res result) {
	var err error
	if res.panicked {
		b.handlerPanics.Add(1)
		err = &PanicError{
			SubscriberID: sub.ID(),
			Kind:         d.Kind,
			Value:        res.panicValue,
			Stack:        string(res.stack),
		}
		b.config.logger.Error().
			Str("subscriber", sub.ID()).
			Str("kind", d.Kind.String()).
			Str("delivery", d.ID.String()).
			Interface("panic", res.panicValue).
			Bool("interest", res.interest).
			Msg("event handler panicked")
	} else {
		b.handlerErrors.Add(1)
		err = &HandlerError{
			SubscriberID: sub.ID(),
			Kind:         d.Kind,
			Err:          res.err,
		}
		b.config.logger.Warn().
			Err(res.err).
			Str("subscriber", sub.ID()).
			Str("kind", d.Kind.String()).
			Str("delivery", d.ID.String()).
			Msg("event handler failed")
	}

	if b.config.onFailure != nil {
		b.config.onFailure(ctx, err)
	}
}

func (b *Bus) checkConfinement(ctx context.Context, op string) {
	if b.config.confinement == nil || b.config.confinement.OnLoop(ctx) {
		return
	}
	b.violations.Add(1)
	if b.config.strict {
		panic(fmt.Errorf("%s: %w", op, ErrNotOnLoop))
	}
	b.config.logger.Warn().Str("op", op).Msg("event bus accessed off the UI loop")
}

func (b *Bus) updateSubscriberCount() {
	n := b.registry.Count()
	b.subscriberCount.Store(int64(n))
	b.config.metrics.setSubscribers(n)
}
