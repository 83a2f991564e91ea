package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed session store.
// It's suitable for multi-server deployments with shared session state.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	closed bool
}

// RedisStoreOption configures RedisStore behavior.
type RedisStoreOption func(*redisStoreConfig)

type redisStoreConfig struct {
	prefix string
}

// WithRedisPrefix sets the key prefix for session keys.
// Default: "gatekit:session:".
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(c *redisStoreConfig) {
		c.prefix = prefix
	}
}

// NewRedisStore creates a new Redis-backed session store.
// The client is not closed by the store; it may be shared.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	cfg := &redisStoreConfig{
		prefix: "gatekit:session:",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &RedisStore{
		client: client,
		prefix: cfg.prefix,
	}
}

// key returns the Redis key for a session ID.
func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}

// Save stores session data with an expiration time.
func (r *RedisStore) Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error {
	if r.closed {
		return ErrStoreClosed{}
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, delete instead
		return r.Delete(ctx, sessionID)
	}

	return r.client.Set(ctx, r.key(sessionID), data, ttl).Err()
}

// Load retrieves session data if it exists.
func (r *RedisStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	if r.closed {
		return nil, ErrStoreClosed{}
	}

	data, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	return data, nil
}

// Delete removes a session from Redis.
func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if r.closed {
		return ErrStoreClosed{}
	}

	return r.client.Del(ctx, r.key(sessionID)).Err()
}

// Touch updates the expiration time for a session.
func (r *RedisStore) Touch(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if r.closed {
		return ErrStoreClosed{}
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return r.Delete(ctx, sessionID)
	}

	return r.client.Expire(ctx, r.key(sessionID), ttl).Err()
}

// Close marks the store as closed.
// Note: This does not close the underlying Redis client,
// as it may be shared with other components.
func (r *RedisStore) Close() error {
	r.closed = true
	return nil
}

// Prefix returns the current key prefix.
// This is for testing/debugging purposes.
func (r *RedisStore) Prefix() string {
	return r.prefix
}
