package view

// State is the binding state of a component.
type State int

const (
	// StateUnbound means no model is bound.
	StateUnbound State = iota

	// StateBound means a model is bound.
	StateBound

	// StateDisposed means the component was torn down and must not be reused.
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
