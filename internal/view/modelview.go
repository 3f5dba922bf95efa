package view

import "context"

// ModelAndView pairs a model with the view that displays it.
type ModelAndView[M Model, V BoundView[M]] struct {
	model M
	view  V
}

// NewModelAndView binds model to view.
func NewModelAndView[M Model, V BoundView[M]](model M, view V) *ModelAndView[M, V] {
	view.SetModel(model)
	return &ModelAndView[M, V]{model: model, view: view}
}

// Model returns the model.
func (mv *ModelAndView[M, V]) Model() M { return mv.model }

// View returns the view.
func (mv *ModelAndView[M, V]) View() V { return mv.view }

// Attach attaches the view to bus.
func (mv *ModelAndView[M, V]) Attach(ctx context.Context, bus Registrar) error {
	return mv.view.Attach(ctx, bus)
}

// Detach detaches the view.
func (mv *ModelAndView[M, V]) Detach(ctx context.Context) {
	mv.view.Detach(ctx)
}

// Dispose disposes the view. The model stays usable by its owner.
func (mv *ModelAndView[M, V]) Dispose(ctx context.Context) {
	mv.view.Dispose(ctx)
}
