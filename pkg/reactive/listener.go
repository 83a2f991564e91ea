package reactive

import "sync/atomic"

// Listener is anything that can be notified when a signal changes.
type Listener interface {
	// MarkDirty notifies the listener that a dependency changed.
	MarkDirty()

	// ID returns a unique identifier used to deduplicate subscriptions.
	ID() uint64
}

// idCounter generates unique IDs for signals and effects.
var idCounter atomic.Uint64

// nextID returns the next unique identifier.
func nextID() uint64 {
	return idCounter.Add(1)
}
