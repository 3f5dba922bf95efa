// Package view binds on-screen components to the models that back them.
//
// A view owns a Panel and holds a non-owning reference to at most one
// model. It can push its visible state into the model
// (UpdateModelFromView) and be told to pull fresh state from it
// (UpdateViewFromModel).
//
// # Lifecycle
//
//	         SetModel               Detach / ClearModel
//	Unbound ─────────▶ Bound ─────────────────────────▶ Unbound
//	   │                 │
//	   └──── Dispose ────┴──────────▶ Disposed
//
// Constructing a view has no side effects on the event bus. Callers attach
// the view explicitly, which registers a subscriber scoped to the view's
// owning panel, and detach or dispose it when the panel is torn down.
//
// # Asynchronous Callbacks
//
// Work that completes off the UI loop must capture Generation before it
// starts and check Alive once it is back on the loop:
//
//	token := c.Generation()
//	device.Confirm(func(ok bool) {
//	    loop.Post(func(ctx context.Context) {
//	        if !c.Alive(token) {
//	            return
//	        }
//	        ...
//	    })
//	})
//
// Detach and Dispose both advance the generation, so callbacks belonging to
// a hidden or destroyed panel are ignored.
//
// # Thread Safety
//
// Views and panels are confined to the UI loop. Only Generation and Alive
// may be called from other goroutines.
package view
