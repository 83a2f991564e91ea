package guard

import (
	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/router"
	"github.com/gatekit-dev/gatekit/pkg/server"
)

// RequireAuth is route middleware that requires authentication.
// Use on routes that should only be accessible to logged-in users.
//
// Usage:
//
//	router.Chain(guard.RequireAuth, otherMiddleware)
var RequireAuth router.Middleware = router.MiddlewareFunc(
	func(ctx server.Ctx, next func() error) error {
		if ctx.User() == nil {
			return auth.ErrUnauthorized
		}
		return next()
	},
)

// RequireRole returns middleware that requires a specific role.
// The check function receives the user and returns true if authorized.
//
// Usage:
//
//	guard.RequireRole(func(u *models.User) bool {
//	    return u.Role == "admin"
//	})
func RequireRole[T any](check func(T) bool) router.Middleware {
	return router.MiddlewareFunc(func(ctx server.Ctx, next func() error) error {
		user, ok := userFromCtx[T](ctx)
		if !ok {
			return auth.ErrUnauthorized
		}
		if !check(user) {
			return auth.ErrForbidden
		}
		return next()
	})
}

// RequirePermission returns middleware that checks for a specific
// permission. Semantically equivalent to RequireRole but communicates
// intent better for permission-based authorization.
func RequirePermission[T any](check func(T) bool) router.Middleware {
	return RequireRole(check)
}

// RequireAny returns middleware that requires at least one check to pass.
//
// Usage:
//
//	guard.RequireAny(
//	    func(u *User) bool { return u.IsAdmin },
//	    func(u *User) bool { return u.IsOwner },
//	)
func RequireAny[T any](checks ...func(T) bool) router.Middleware {
	return router.MiddlewareFunc(func(ctx server.Ctx, next func() error) error {
		user, ok := userFromCtx[T](ctx)
		if !ok {
			return auth.ErrUnauthorized
		}

		for _, check := range checks {
			if check(user) {
				return next()
			}
		}

		return auth.ErrForbidden
	})
}

// RequireAll returns middleware that requires all checks to pass.
func RequireAll[T any](checks ...func(T) bool) router.Middleware {
	return router.MiddlewareFunc(func(ctx server.Ctx, next func() error) error {
		user, ok := userFromCtx[T](ctx)
		if !ok {
			return auth.ErrUnauthorized
		}

		for _, check := range checks {
			if !check(user) {
				return auth.ErrForbidden
			}
		}

		return next()
	})
}

// userFromCtx resolves the typed user from the request context, falling
// back to the session-stored user.
func userFromCtx[T any](ctx server.Ctx) (T, bool) {
	if val := ctx.User(); val != nil {
		if user, ok := val.(T); ok {
			return user, true
		}
	}
	return auth.Get[T](ctx.Session())
}
