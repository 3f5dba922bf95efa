package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for the event bus.
var (
	// ErrBusClosed is returned when operations are attempted on a closed bus.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrNilSubscriber is returned when a nil subscriber is registered.
	ErrNilSubscriber = errors.New("subscriber cannot be nil")

	// ErrNoBindings is returned when a subscriber has no handlers at all.
	ErrNoBindings = errors.New("subscriber has no bindings")

	// ErrHandlerPanic is matched by PanicError through errors.Is.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrNotOnLoop reports bus access from outside the UI loop.
	ErrNotOnLoop = errors.New("event bus accessed off the UI loop")
)

// HandlerError wraps an error returned by a subscriber's handler.
type HandlerError struct {
	// SubscriberID is the ID of the subscriber whose handler failed.
	SubscriberID string

	// Kind is the kind of the event being delivered.
	Kind Kind

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler error for subscriber %s on %s: %v", e.SubscriberID, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError wraps a panic value recovered from a handler.
type PanicError struct {
	// SubscriberID is the ID of the subscriber whose handler panicked.
	SubscriberID string

	// Kind is the kind of the event being delivered.
	Kind Kind

	// Value is the value passed to panic().
	Value any

	// Stack is the stack trace at the time of the panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panic for subscriber %s on %s: %v", e.SubscriberID, e.Kind, e.Value)
}

// Is allows errors.Is to match PanicError with ErrHandlerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}
