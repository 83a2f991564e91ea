package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-memory session store implementation.
// It's the default store and suitable for single-server deployments.
// For multi-server deployments, use RedisStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*storedSession
	closed   bool
	done     chan struct{}
}

type storedSession struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStoreOption configures MemoryStore behavior.
type MemoryStoreOption func(*memoryStoreConfig)

type memoryStoreConfig struct {
	cleanupInterval time.Duration
}

// WithCleanupInterval sets how often expired sessions are cleaned up.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryStoreOption {
	return func(c *memoryStoreConfig) {
		c.cleanupInterval = d
	}
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	cfg := &memoryStoreConfig{
		cleanupInterval: 1 * time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	store := &MemoryStore{
		sessions: make(map[string]*storedSession),
		done:     make(chan struct{}),
	}

	go store.cleanupLoop(cfg.cleanupInterval)
	return store
}

// Save stores session data with an expiration time.
func (m *MemoryStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	// Copy to prevent caller mutations
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	m.sessions[sessionID] = &storedSession{
		data:      dataCopy,
		expiresAt: expiresAt,
	}
	return nil
}

// Load retrieves session data if it exists and hasn't expired.
func (m *MemoryStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed{}
	}

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}

	if time.Now().After(s.expiresAt) {
		return nil, nil
	}

	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)
	return dataCopy, nil
}

// Delete removes a session.
func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	delete(m.sessions, sessionID)
	return nil
}

// Touch updates the expiration time for a session.
func (m *MemoryStore) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed{}
	}

	if s, ok := m.sessions[sessionID]; ok {
		s.expiresAt = expiresAt
	}
	return nil
}

// Close stops the cleanup loop and releases all sessions.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	m.sessions = nil
	return nil
}

// Len returns the number of stored sessions, including expired ones
// not yet swept. For tests and diagnostics.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupLoop periodically sweeps expired sessions.
func (m *MemoryStore) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryStore) sweep() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	for id, s := range m.sessions {
		if now.After(s.expiresAt) {
			delete(m.sessions, id)
		}
	}
}
