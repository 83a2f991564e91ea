// Package sessionauth adapts a session store to the auth.Source
// interface. Sessions are issued with a TTL, persisted as JSON, and
// resolved from a session ID cookie.
package sessionauth
