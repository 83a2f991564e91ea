// Package vtest provides test helpers: a fluent builder for request
// contexts and assertions over rendered output.
package vtest
