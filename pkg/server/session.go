package server

import "sync"

// Session is an in-memory key/value session.
// It satisfies the auth package's Session interface.
type Session struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMockSession creates an empty session for tests and adapters.
func NewMockSession() *Session {
	return &Session{values: make(map[string]any)}
}

// Get returns the value for key, or nil.
func (s *Session) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores a value under key.
func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
}

// Delete removes a value.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns a snapshot of the stored keys.
func (s *Session) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
