package event

import (
	"context"

	"github.com/google/uuid"
)

// SubscriberOption configures a Subscriber.
// Both Binding and the value returned by WithInterest are options.
type SubscriberOption interface {
	apply(*Subscriber)
}

// Binding maps one event kind to a handler.
type Binding struct {
	Kind    Kind
	Handler Handler
}

func (b Binding) apply(s *Subscriber) {
	if b.Handler == nil || b.Kind == "" {
		return
	}
	s.bindings[b.Kind] = append(s.bindings[b.Kind], b.Handler)
}

// On binds a typed callback to the kind reported by the zero value of T.
// Events of the same kind but a different Go type are skipped.
func On[T Event](fn func(ctx context.Context, evt T) error) Binding {
	var zero T
	return Binding{
		Kind: zero.Kind(),
		Handler: HandlerFunc(func(ctx context.Context, evt Event) error {
			typed, ok := evt.(T)
			if !ok {
				return nil
			}
			return fn(ctx, typed)
		}),
	}
}

// OnKind binds an untyped handler to an explicit kind.
func OnKind(kind Kind, h Handler) Binding {
	return Binding{Kind: kind, Handler: h}
}

type interestOption FilterFunc

func (f interestOption) apply(s *Subscriber) {
	s.interest = FilterFunc(f)
}

// WithInterest sets the subscriber's interest predicate. Events rejected by
// the predicate are not delivered even when a binding exists for their kind.
func WithInterest(f FilterFunc) SubscriberOption {
	return interestOption(f)
}

// Subscriber is a registration identity together with its interest
// predicate and a dispatch table from event kind to handlers.
type Subscriber struct {
	id       string
	interest FilterFunc
	bindings map[Kind][]Handler
}

// NewSubscriber creates a subscriber. An empty id is replaced with a
// random UUID.
func NewSubscriber(id string, opts ...SubscriberOption) *Subscriber {
	if id == "" {
		id = uuid.NewString()
	}
	s := &Subscriber{
		id:       id,
		bindings: make(map[Kind][]Handler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(s)
		}
	}
	return s
}

// ID returns the subscriber identity.
func (s *Subscriber) ID() string {
	return s.id
}

// Kinds returns the kinds this subscriber has bindings for.
func (s *Subscriber) Kinds() []Kind {
	kinds := make([]Kind, 0, len(s.bindings))
	for k := range s.bindings {
		kinds = append(kinds, k)
	}
	return kinds
}

// Interested reports whether evt should be delivered to this subscriber.
func (s *Subscriber) Interested(evt Event) bool {
	if len(s.bindings[evt.Kind()]) == 0 {
		return false
	}
	if s.interest != nil && !s.interest(evt) {
		return false
	}
	return true
}

func (s *Subscriber) handlers(kind Kind) []Handler {
	return s.bindings[kind]
}
