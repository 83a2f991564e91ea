package auth

import (
	"context"

	"github.com/gatekit-dev/gatekit/pkg/reactive"
)

// Source supplies authentication state to a guard.
// It replaces the duck-typed context hook of client-side guards with an
// explicit capability: implementations own and mutate the state, guards
// only read it.
type Source interface {
	// State returns the current authentication state.
	State(ctx context.Context) State
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) State

// State implements Source.
func (f SourceFunc) State(ctx context.Context) State {
	return f(ctx)
}

// StaticSource returns a source that always reports the given state.
// Useful for tests and for wiring guards to precomputed decisions.
func StaticSource(state State) Source {
	return SourceFunc(func(context.Context) State {
		return state
	})
}

// SignalSource bridges a reactive signal to the Source interface.
// Reading it inside an effect subscribes the effect, so a guard bound to
// the signal re-evaluates on every state change.
type SignalSource struct {
	Signal *reactive.Signal[State]
}

// State implements Source. A nil signal reports an unknown state.
func (s SignalSource) State(context.Context) State {
	if s.Signal == nil {
		return UnknownState()
	}
	return s.Signal.Get()
}

// NewSignalSource creates a signal-backed source seeded with initial.
func NewSignalSource(initial State) (SignalSource, *reactive.Signal[State]) {
	sig := reactive.NewSignal(initial)
	return SignalSource{Signal: sig}, sig
}
