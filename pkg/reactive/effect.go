package reactive

import (
	"sync"
	"sync/atomic"
)

// Cleanup is a function returned by an effect body to undo its work
// before the next run or on dispose.
type Cleanup func()

// Effect represents a reactive side effect that runs when its dependencies
// change. Effects run immediately when created, and re-run whenever any
// signal they read during execution changes.
type Effect struct {
	id uint64

	// fn is the effect function to run.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// runMu serializes effect runs triggered from different goroutines.
	runMu sync.Mutex

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// MarkDirty re-runs the effect. Implements the Listener interface.
// Without a scheduler in front of it, a dirty effect runs synchronously
// on the goroutine that changed the signal.
func (e *Effect) MarkDirty() {
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect function, re-tracking dependencies.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	// Run cleanup from previous run
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from old sources
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	// Track new sources during execution. The restore is deferred so a
	// panicking effect body does not leave this goroutine tracking.
	oldListener := setCurrentListener(e)
	defer setCurrentListener(oldListener)
	e.cleanup = e.fn()
}

// addSource adds a source dependency.
// Called by signals when they are read during effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose cleans up the effect and unsubscribes from all sources.
// A disposed effect never runs again.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// CreateEffect creates and runs a new effect.
// The effect function runs immediately and re-runs when any signal it
// reads changes. If the function returns a Cleanup, it will be called
// before the effect re-runs or when the effect is disposed.
//
// Example:
//
//	e := reactive.CreateEffect(func() reactive.Cleanup {
//	    fmt.Println("state is:", state.Get())
//	    return nil
//	})
//	defer e.Dispose()
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}

	// Run immediately
	e.run()

	return e
}
