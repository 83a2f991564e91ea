package session

import (
	"context"
	"time"
)

// Store defines the interface for session persistence backends.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save persists session state. If sessionID already exists, it is
	// overwritten. The expiresAt parameter indicates when the session
	// should expire.
	Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error

	// Load retrieves session state by ID.
	// Returns (nil, nil) if the session doesn't exist or has expired.
	// Returns (data, nil) if found and not expired.
	// Returns (nil, err) on backend errors.
	Load(ctx context.Context, sessionID string) ([]byte, error)

	// Delete removes a session. Called on explicit logout or expiration.
	// Should not return an error if the session doesn't exist.
	Delete(ctx context.Context, sessionID string) error

	// Touch updates the expiration time without loading full state.
	// This is more efficient than Load+Save for keep-alive operations.
	// Should not return an error if the session doesn't exist.
	Touch(ctx context.Context, sessionID string, expiresAt time.Time) error

	// Close releases any resources held by the store.
	Close() error
}

// NotFoundError is returned by implementations that need an explicit
// error type for a missing session. Note: Load returns (nil, nil) for
// missing sessions, not this error.
type NotFoundError struct {
	SessionID string
}

func (e NotFoundError) Error() string {
	return "session not found: " + e.SessionID
}

// ErrStoreClosed is returned when operations are attempted on a closed store.
type ErrStoreClosed struct{}

func (e ErrStoreClosed) Error() string {
	return "session store is closed"
}
