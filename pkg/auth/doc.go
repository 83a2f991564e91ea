// Package auth defines the authentication state model guards consume.
//
// A Source owns and mutates authentication state; guards only read it.
// State is a tri-state value: authenticated, loading, or unknown. Unknown
// resolves to unauthenticated so access always fails closed.
//
// The package also provides session helpers (Set, Clear, Get) over a
// minimal Session interface, and the Principal identity type used by the
// jwtauth and sessionauth sources.
package auth
