// Package reactive provides the small signal/effect core that drives
// guard re-evaluation. A guard bound to a Signal[auth.State] re-evaluates
// synchronously every time the state changes.
//
// The model is deliberately minimal: signals hold values and notify
// listeners, effects auto-track the signals they read. There is no
// batching, memoization, or ownership tree.
package reactive
