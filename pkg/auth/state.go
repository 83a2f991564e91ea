package auth

// State is the externally supplied authentication state a guard reads.
// It is a value type; guards never mutate it.
//
// Known models sources that have not produced a definitive answer yet
// (for example a context whose flags are still undefined). An unknown
// state resolves to "not authenticated, not loading": access fails
// closed, but nothing errors.
type State struct {
	// Authenticated reports whether the current principal is logged in.
	Authenticated bool

	// Loading reports whether the source is still resolving.
	Loading bool

	// Known reports whether the source has produced definitive flags.
	Known bool
}

// AuthenticatedState returns a settled, logged-in state.
func AuthenticatedState() State {
	return State{Authenticated: true, Known: true}
}

// UnauthenticatedState returns a settled, logged-out state.
func UnauthenticatedState() State {
	return State{Known: true}
}

// LoadingState returns a state that is still resolving.
func LoadingState() State {
	return State{Loading: true, Known: true}
}

// UnknownState returns a state whose flags are undefined.
func UnknownState() State {
	return State{}
}

// Resolve collapses an unknown state to its fail-closed interpretation.
// Settled states pass through unchanged.
func (s State) Resolve() State {
	if !s.Known {
		return State{Known: true}
	}
	return s
}
