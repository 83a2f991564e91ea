// Package render turns vdom trees into HTML strings or streams.
// Output is deterministic: attributes are written in sorted order and
// all text content is escaped.
package render
