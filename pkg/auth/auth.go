package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
)

// Session provides minimal session access needed by auth helpers.
type Session interface {
	Get(key string) any
	Set(key string, value any)
	Delete(key string)
}

// DebugMode enables extra validation and logging for development.
var DebugMode bool

// SessionKey is the standard session key for the authenticated user.
const SessionKey = "gatekit_auth_user"

// sessionPresenceKey marks that a session was authenticated.
// This survives serialization (unlike the user object) and allows
// resume logic to detect "was authenticated but needs revalidation."
const sessionPresenceKey = SessionKey + ":present"

// ErrUnauthorized is returned when authentication is required but not present.
// This typically triggers a 401 response or redirect to login.
var ErrUnauthorized = errors.New("unauthorized: authentication required")

// ErrForbidden is returned when authentication is present but insufficient.
// This typically triggers a 403 response.
var ErrForbidden = errors.New("forbidden: insufficient permissions")

func isNilSession(session Session) bool {
	if session == nil {
		return true
	}
	v := reflect.ValueOf(session)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.Interface, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Get retrieves the authenticated user from the session.
//
// Returns (user, true) if a user of type T is stored, (zero, false) otherwise.
//
// In debug mode, logs a warning if a value exists but type assertion fails,
// helping developers catch common value/pointer mismatches.
//
// Example:
//
//	user, ok := auth.Get[*models.User](session)
//	if !ok {
//	    // User not authenticated
//	}
func Get[T any](session Session) (T, bool) {
	var zero T
	if isNilSession(session) {
		return zero, false
	}

	val := session.Get(SessionKey)
	if val == nil {
		return zero, false
	}

	// Fast path: type assertion succeeds
	if user, ok := val.(T); ok {
		return user, true
	}

	// Slow path: debug aid for type mismatches
	if DebugMode {
		storedType := reflect.TypeOf(val)
		requestedType := reflect.TypeOf(zero)
		if requestedType == nil {
			// T is an interface type, get it differently
			requestedType = reflect.TypeOf((*T)(nil)).Elem()
		}

		slog.Warn("gatekit/auth: type mismatch",
			"stored_type", storedType,
			"requested_type", requestedType,
			"hint", "Did you store a struct (User) but request a pointer (*User)?",
		)
	}

	return zero, false
}

// Require returns the authenticated user or ErrUnauthorized.
//
// Example:
//
//	user, err := auth.Require[*models.User](session)
//	if err != nil {
//	    return err
//	}
func Require[T any](session Session) (T, error) {
	user, ok := Get[T](session)
	if !ok {
		return user, ErrUnauthorized
	}
	return user, nil
}

// Set stores the authenticated user in the session.
// Also sets an auth presence flag that survives session serialization.
func Set[T any](session Session, user T) {
	if isNilSession(session) {
		return
	}
	session.Set(SessionKey, user)
	session.Set(sessionPresenceKey, true)
}

// Clear removes the authenticated user from the session.
// Also clears the auth presence flag. Call this on logout.
func Clear(session Session) {
	if isNilSession(session) {
		return
	}
	session.Delete(SessionKey)
	session.Delete(sessionPresenceKey)
}

// IsAuthenticated returns whether the session has an authenticated user.
func IsAuthenticated(session Session) bool {
	if isNilSession(session) {
		return false
	}
	return session.Get(SessionKey) != nil
}

// WasAuthenticated checks if the session had authentication before.
// Used by resume logic to detect "was authenticated but auth now invalid."
// Returns false if session is nil.
func WasAuthenticated(session Session) bool {
	if isNilSession(session) {
		return false
	}
	val := session.Get(sessionPresenceKey)
	if val == nil {
		return false
	}
	present, ok := val.(bool)
	return ok && present
}

// MustGet is like Get but panics if authentication fails.
// Use sparingly, prefer Require for proper error handling.
func MustGet[T any](session Session) T {
	user, ok := Get[T](session)
	if !ok {
		panic("auth.MustGet: user not authenticated")
	}
	return user
}

// StatusCode returns the appropriate HTTP status code for an auth error.
// Returns (statusCode, true) for auth errors, (0, false) otherwise.
func StatusCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, true
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, true
	default:
		return 0, false
	}
}

// IsAuthError returns true if the error is an authentication or
// authorization error.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// SessionPresenceKey returns the key used to track auth presence.
// Exported for session serialization to skip the user object but keep the flag.
func SessionPresenceKey() string {
	return sessionPresenceKey
}
