package guard

import (
	"context"

	"github.com/gatekit-dev/gatekit/pkg/reactive"
)

// Bind creates a reactive effect that re-evaluates the guard whenever the
// signals its source reads change, calling fn with each decision.
//
// The guard's source must read a reactive signal (for example
// auth.SignalSource) for re-evaluation to trigger; with a non-reactive
// source the effect runs exactly once.
//
// Dispose the returned effect when the consumer goes away:
//
//	e := guard.Bind(ctx, g, func(d guard.Decision) { ... })
//	defer e.Dispose()
func Bind(ctx context.Context, g *Guard, fn func(Decision)) *reactive.Effect {
	return reactive.CreateEffect(func() reactive.Cleanup {
		decision := g.Evaluate(ctx)
		if fn != nil {
			fn(decision)
		}
		return nil
	})
}
