package state

// BindingState represents where a surface binding is in its lifecycle
type BindingState int

const (
	// StateIdle: no surface, no renderer (or only a surface kept after a frame failure)
	StateIdle BindingState = iota
	// StateBound: surface and renderer live, frame tick subscribed
	StateBound
	// StateClosed: terminal. No further transitions are accepted.
	StateClosed
)

// String returns the string representation of the binding state
func (s BindingState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateBound:
		return "Bound"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Accepting reports whether a controller in this state still handles events
func (s BindingState) Accepting() bool {
	return s == StateIdle || s == StateBound
}
