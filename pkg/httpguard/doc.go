// Package httpguard mounts a guard as standard net/http middleware, the
// transport used for initial page loads before any live channel exists.
package httpguard
