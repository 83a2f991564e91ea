// Package session provides pluggable persistence for the session-backed
// auth source. Sessions are opaque byte payloads with a TTL.
package session
