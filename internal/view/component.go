package view

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/walletview/internal/event"
)

// ErrDisposed is returned when attaching a disposed component.
var ErrDisposed = errors.New("component disposed")

// Component provides the default half of View for concrete components to
// embed. Embedders supply NewComponentPanel and usually UpdateModelFromView.
type Component[M Model] struct {
	id        string
	panelName string
	log       zerolog.Logger

	model    M
	hasModel bool
	panel    *Panel

	listens []event.SubscriberOption
	bus     Registrar

	generation atomic.Uint64
	disposed   atomic.Bool
}

// NewComponent creates an unbound component owned by the named panel.
func NewComponent[M Model](panelName string, log zerolog.Logger) *Component[M] {
	id := uuid.NewString()
	return &Component[M]{
		id:        id,
		panelName: panelName,
		log: log.With().
			Str("component", "view").
			Str("panel", panelName).
			Str("view_id", id).
			Logger(),
	}
}

// ID returns the identity used for the component's bus subscriber.
func (c *Component[M]) ID() string { return c.id }

// PanelName returns the name of the owning panel.
func (c *Component[M]) PanelName() string { return c.panelName }

// Logger returns the component logger.
func (c *Component[M]) Logger() *zerolog.Logger { return &c.log }

// Model returns the bound model, if any.
func (c *Component[M]) Model() (M, bool) {
	return c.model, c.hasModel
}

// SetModel binds m. It is ignored once the component is disposed.
func (c *Component[M]) SetModel(m M) {
	if c.disposed.Load() {
		c.log.Warn().Msg("set model on disposed component ignored")
		return
	}
	c.model = m
	c.hasModel = true
}

// ClearModel unbinds the current model. The model itself is left as is.
func (c *Component[M]) ClearModel() {
	var zero M
	c.model = zero
	c.hasModel = false
}

// State returns the binding state.
func (c *Component[M]) State() State {
	switch {
	case c.disposed.Load():
		return StateDisposed
	case c.hasModel:
		return StateBound
	default:
		return StateUnbound
	}
}

// UpdateModelFromView is a no-op for display-only components.
func (c *Component[M]) UpdateModelFromView() {}

// UpdateViewFromModel is a no-op for components that never observe
// external model changes.
func (c *Component[M]) UpdateViewFromModel() {}

// RequestInitialFocus does nothing by default.
func (c *Component[M]) RequestInitialFocus(context.Context) {}

// Adopt records p as the current panel and returns it. NewComponentPanel
// implementations end with it.
func (c *Component[M]) Adopt(p *Panel) *Panel {
	c.panel = p
	return p
}

// CurrentComponentPanel returns the panel built last, or nil.
func (c *Component[M]) CurrentComponentPanel() *Panel {
	return c.panel
}

// Listen declares the bindings to register on Attach. Call it from the
// constructor; it has no effect on a bus until Attach.
func (c *Component[M]) Listen(opts ...event.SubscriberOption) {
	c.listens = append(c.listens, opts...)
}

// Attach registers the component's bindings with bus, scoped to events for
// its own panel. A component without bindings attaches without registering.
// Attaching again replaces the earlier registration.
func (c *Component[M]) Attach(ctx context.Context, bus Registrar) error {
	if c.disposed.Load() {
		return ErrDisposed
	}
	if c.bus != nil && c.bus != bus {
		c.Detach(ctx)
	}
	c.bus = bus

	if len(c.listens) == 0 {
		return nil
	}

	opts := make([]event.SubscriberOption, 0, len(c.listens)+1)
	opts = append(opts, event.WithInterest(event.ScopedTo(c.panelName)))
	opts = append(opts, c.listens...)

	if err := bus.Register(ctx, event.NewSubscriber(c.id, opts...)); err != nil {
		c.bus = nil
		return err
	}
	c.log.Debug().Msg("view attached")
	return nil
}

// Detach unregisters the component and invalidates pending callbacks.
// Detaching an unattached component only advances the generation.
func (c *Component[M]) Detach(ctx context.Context) {
	c.generation.Add(1)
	if c.bus == nil {
		return
	}
	if len(c.listens) > 0 {
		c.bus.UnregisterID(ctx, c.id)
	}
	c.bus = nil
	c.log.Debug().Msg("view detached")
}

// Attached reports whether the component is attached to a bus.
func (c *Component[M]) Attached() bool {
	return c.bus != nil
}

// Dispose detaches the component, unbinds its model and drops its panel.
// A disposed component cannot be attached again. Dispose is idempotent.
func (c *Component[M]) Dispose(ctx context.Context) {
	if c.disposed.Load() {
		return
	}
	c.Detach(ctx)
	c.disposed.Store(true)
	c.ClearModel()
	c.panel = nil
	c.log.Debug().Msg("view disposed")
}

// Generation returns a token for asynchronous work started now.
func (c *Component[M]) Generation() uint64 {
	return c.generation.Load()
}

// Alive reports whether work started at generation token may still touch
// the component.
func (c *Component[M]) Alive(token uint64) bool {
	return !c.disposed.Load() && c.generation.Load() == token
}
