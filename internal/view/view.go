package view

import (
	"context"

	"github.com/dshills/walletview/internal/event"
)

// Model is any value backing a view. Views normally hold pointer models so
// that UpdateModelFromView writes through to the owner.
type Model interface{}

// View is the contract between a component's visible state and its model.
type View[M Model] interface {
	// Model returns the bound model, if any.
	Model() (M, bool)

	// SetModel binds m, replacing any previous model.
	SetModel(m M)

	// ClearModel unbinds the current model.
	ClearModel()

	// UpdateModelFromView copies visible field values into the bound model.
	// It is a no-op when no model is bound.
	UpdateModelFromView()

	// UpdateViewFromModel refreshes visible fields from the bound model.
	UpdateViewFromModel()

	// NewComponentPanel builds a fresh panel. Panels never share state
	// with earlier ones.
	NewComponentPanel() *Panel

	// CurrentComponentPanel returns the panel built last, or nil.
	CurrentComponentPanel() *Panel

	// RequestInitialFocus focuses the most useful field. UI loop only.
	RequestInitialFocus(ctx context.Context)
}

// Registrar is the part of the event bus that views register with.
type Registrar interface {
	Register(ctx context.Context, sub *event.Subscriber) error
	UnregisterID(ctx context.Context, id string)
}

// Lifecycle is implemented by views that can be attached to a bus.
type Lifecycle interface {
	Attach(ctx context.Context, bus Registrar) error
	Detach(ctx context.Context)
	Dispose(ctx context.Context)
}

// BoundView is a view with an explicit lifecycle.
type BoundView[M Model] interface {
	View[M]
	Lifecycle
}
