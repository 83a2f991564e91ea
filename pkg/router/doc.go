// Package router provides the middleware chain and navigation primitives
// guards plug into: a Middleware interface over server.Ctx, an injected
// Navigator capability, and redirect-target path canonicalization.
package router
