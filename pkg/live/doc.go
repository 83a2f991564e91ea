// Package live streams guard re-evaluations over a WebSocket. The server
// owns the auth state; clients receive whole-fragment render frames and
// navigate frames as the state changes.
package live
