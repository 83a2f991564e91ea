package router

import "github.com/gatekit-dev/gatekit/pkg/server"

// Middleware runs before a route handler. Returning an error aborts the
// chain with that error; returning nil without calling next aborts it
// silently.
type Middleware interface {
	Handle(ctx server.Ctx, next func() error) error
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(ctx server.Ctx, next func() error) error

// Handle implements Middleware.
func (f MiddlewareFunc) Handle(ctx server.Ctx, next func() error) error {
	return f(ctx, next)
}

// ComposeMiddleware runs mw in order around handler: the first middleware
// is outermost, the handler innermost.
func ComposeMiddleware(ctx server.Ctx, mw []Middleware, handler func() error) error {
	next := handler
	for i := len(mw) - 1; i >= 0; i-- {
		m, inner := mw[i], next
		next = func() error {
			return m.Handle(ctx, inner)
		}
	}
	return next()
}

// Chain folds several middleware into one.
func Chain(middleware ...Middleware) Middleware {
	return MiddlewareFunc(func(ctx server.Ctx, next func() error) error {
		return ComposeMiddleware(ctx, middleware, next)
	})
}

// Skip bypasses mw when condition holds.
func Skip(condition func(ctx server.Ctx) bool, mw Middleware) Middleware {
	return MiddlewareFunc(func(ctx server.Ctx, next func() error) error {
		if condition(ctx) {
			return next()
		}
		return mw.Handle(ctx, next)
	})
}

// Only runs mw exclusively when condition holds.
func Only(condition func(ctx server.Ctx) bool, mw Middleware) Middleware {
	return Skip(func(ctx server.Ctx) bool { return !condition(ctx) }, mw)
}
