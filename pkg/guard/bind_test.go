package guard

import (
	"context"
	"testing"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/router"
)

func TestBindReactsToSignal(t *testing.T) {
	source, sig := auth.NewSignalSource(auth.LoadingState())
	rec := router.NewRecorder()
	g := New(source, rec)

	var decisions []Decision
	effect := Bind(context.Background(), g, func(d Decision) {
		decisions = append(decisions, d)
	})
	defer effect.Dispose()

	// The effect runs once immediately.
	if len(decisions) != 1 || decisions[0] != DecisionLoading {
		t.Fatalf("initial decisions = %v, want [loading]", decisions)
	}

	sig.Set(auth.UnauthenticatedState())
	if len(decisions) != 2 || decisions[1] != DecisionDenied {
		t.Fatalf("after logout decisions = %v, want denied appended", decisions)
	}
	if got := len(rec.Calls()); got != 1 {
		t.Errorf("navigations = %d, want 1", got)
	}

	sig.Set(auth.AuthenticatedState())
	if len(decisions) != 3 || decisions[2] != DecisionAllowed {
		t.Fatalf("after login decisions = %v, want allowed appended", decisions)
	}

	// Still only the one navigation from the denied transition.
	if got := len(rec.Calls()); got != 1 {
		t.Errorf("navigations = %d, want 1", got)
	}
}

func TestBindDisposeStopsUpdates(t *testing.T) {
	source, sig := auth.NewSignalSource(auth.AuthenticatedState())
	g := New(source, nil)

	count := 0
	effect := Bind(context.Background(), g, func(Decision) { count++ })

	if count != 1 {
		t.Fatalf("initial run count = %d, want 1", count)
	}

	effect.Dispose()
	sig.Set(auth.UnauthenticatedState())

	if count != 1 {
		t.Errorf("after dispose count = %d, want 1", count)
	}
}

func TestBindNilCallback(t *testing.T) {
	source, sig := auth.NewSignalSource(auth.UnauthenticatedState())
	rec := router.NewRecorder()
	g := New(source, rec)

	effect := Bind(context.Background(), g, nil)
	defer effect.Dispose()

	sig.Set(auth.AuthenticatedState())
	sig.Set(auth.UnauthenticatedState())

	// Two transitions into denied, two navigations.
	if got := len(rec.Calls()); got != 2 {
		t.Errorf("navigations = %d, want 2", got)
	}
}
