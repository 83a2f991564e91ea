// Package vdom provides a minimal virtual node tree for server-side
// rendering. Guards wrap opaque renderable content expressed as VNodes,
// which keeps the toolkit decoupled from any particular UI framework.
//
// A nil *VNode is a valid child everywhere and renders as nothing.
package vdom
