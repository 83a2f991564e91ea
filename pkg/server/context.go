package server

import "context"

// Ctx provides request-scoped access for middleware and guards.
// The current path is read-only; guards never mutate it.
type Ctx interface {
	// Path returns the current request path.
	Path() string

	// User returns the authenticated user, or nil.
	User() any

	// SetUser sets the authenticated user for the current request.
	SetUser(user any)

	// Session returns the request session.
	Session() *Session

	// StdContext returns the underlying context.Context.
	StdContext() context.Context
}

// requestCtx is the basic Ctx implementation.
type requestCtx struct {
	path    string
	user    any
	session *Session
	std     context.Context
}

// CtxOption configures a context created with NewContext.
type CtxOption func(*requestCtx)

// WithPath sets the current request path.
func WithPath(path string) CtxOption {
	return func(c *requestCtx) {
		c.path = path
	}
}

// WithStdContext sets the underlying context.Context.
func WithStdContext(ctx context.Context) CtxOption {
	return func(c *requestCtx) {
		c.std = ctx
	}
}

// NewContext creates a request context backed by the given session.
func NewContext(session *Session, opts ...CtxOption) Ctx {
	c := &requestCtx{
		path:    "/",
		session: session,
		std:     context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTestContext creates a context for tests.
// It behaves identically to NewContext and exists so test intent reads
// clearly at call sites.
func NewTestContext(session *Session, opts ...CtxOption) Ctx {
	return NewContext(session, opts...)
}

func (c *requestCtx) Path() string { return c.path }

func (c *requestCtx) User() any {
	if c.user != nil {
		return c.user
	}
	// Fall back to the session-stored user.
	if c.session != nil {
		return c.session.Get(userSessionKey)
	}
	return nil
}

func (c *requestCtx) SetUser(user any) {
	c.user = user
}

func (c *requestCtx) Session() *Session { return c.session }

func (c *requestCtx) StdContext() context.Context { return c.std }

// userSessionKey mirrors auth.SessionKey without importing the auth
// package (server is a leaf dependency of router and guard).
const userSessionKey = "gatekit_auth_user"
