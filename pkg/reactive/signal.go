package reactive

import (
	"reflect"
	"sync"
)

// signalBase carries the type-erased subscriber bookkeeping shared by all
// signal instantiations.
type signalBase struct {
	id uint64

	subMu sync.RWMutex
	subs  []Listener
}

// subscribe registers l, once. Listeners are deduplicated by ID so an
// effect that reads the same signal several times per run subscribes a
// single time.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := l.ID()
	for _, sub := range s.subs {
		if sub.ID() == id {
			return
		}
	}
	s.subs = append(s.subs, l)
}

// unsubscribe removes l. Order is not preserved.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := l.ID()
	for i, sub := range s.subs {
		if sub.ID() == id {
			last := len(s.subs) - 1
			s.subs[i] = s.subs[last]
			s.subs = s.subs[:last]
			return
		}
	}
}

// notifySubscribers marks every subscriber dirty. The slice is snapshotted
// first so no lock is held while listeners run (they may resubscribe).
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	snapshot := append([]Listener(nil), s.subs...)
	s.subMu.RUnlock()

	for _, sub := range snapshot {
		sub.MarkDirty()
	}
}

// Signal holds a reactive value. Reading it inside a running effect
// subscribes that effect; writing a different value re-runs subscribers.
type Signal[T any] struct {
	base signalBase

	mu    sync.RWMutex
	value T

	// equal overrides change detection. Nil means defaultEquals.
	equal func(T, T) bool
}

// NewSignal creates a signal seeded with initial.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the tracking listener,
// if any.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Tracking happens outside the value lock so a listener that reads
	// other signals cannot deadlock against a concurrent Set.
	if listener := getCurrentListener(); listener != nil {
		s.base.subscribe(listener)
		if e, ok := listener.(*Effect); ok {
			e.addSource(&s.base)
		}
	}

	return value
}

// Peek returns the current value without creating a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores value and notifies subscribers unless it equals the current
// value under the signal's equality function.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Update applies fn to the current value under the write lock, then
// notifies as Set does.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	next := fn(s.value)
	changed := !s.equals(s.value, next)
	if changed {
		s.value = next
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// WithEquals installs a custom equality function and returns the signal
// for chaining. Use it when reflect.DeepEqual is too expensive or wrong
// for T.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the signal's unique identifier.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals compares with == for the common scalar types and falls
// back to reflect.DeepEqual.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		return reflect.DeepEqual(a, b)
	}
}
