package sessionauth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/session"
)

// ErrNoStore is returned when a provider is constructed without a store.
var ErrNoStore = errors.New("sessionauth: session store is required")

// storedRecord is the JSON payload persisted per session.
type storedRecord struct {
	Principal auth.Principal `json:"principal"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Provider is a session-first auth source: it resolves a session ID
// cookie against a session.Store and exposes the result as auth.State.
type Provider struct {
	store      session.Store
	cookieName string
	ttl        time.Duration
}

// Option configures a Provider.
type Option func(*Provider)

// WithCookieName sets the cookie name used to load session IDs.
// Default: "session".
func WithCookieName(name string) Option {
	return func(p *Provider) {
		if name != "" {
			p.cookieName = name
		}
	}
}

// WithTTL sets the lifetime of issued sessions. Default: 24h.
func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) {
		if ttl > 0 {
			p.ttl = ttl
		}
	}
}

// New creates a session-first auth provider.
func New(store session.Store, opts ...Option) (*Provider, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	p := &Provider{
		store:      store,
		cookieName: "session",
		ttl:        24 * time.Hour,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// CookieName returns the cookie name the provider reads.
func (p *Provider) CookieName() string {
	return p.cookieName
}

// Issue persists a new session for the principal and returns its ID.
// Login handlers set the ID as the session cookie.
func (p *Provider) Issue(ctx context.Context, principal auth.Principal) (string, error) {
	id := uuid.NewString()
	expiresAt := time.Now().Add(p.ttl)

	record := storedRecord{Principal: principal, ExpiresAt: expiresAt}
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}

	if err := p.store.Save(ctx, id, data, expiresAt); err != nil {
		return "", err
	}
	return id, nil
}

// Revoke deletes a session. Call on logout.
func (p *Provider) Revoke(ctx context.Context, sessionID string) error {
	return p.store.Delete(ctx, sessionID)
}

// Lookup resolves a session ID to its principal.
// Returns (zero, false) for missing, expired, or corrupt sessions.
func (p *Provider) Lookup(ctx context.Context, sessionID string) (auth.Principal, bool) {
	if sessionID == "" {
		return auth.Principal{}, false
	}

	data, err := p.store.Load(ctx, sessionID)
	if err != nil || data == nil {
		return auth.Principal{}, false
	}

	var record storedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return auth.Principal{}, false
	}
	if time.Now().After(record.ExpiresAt) {
		return auth.Principal{}, false
	}

	record.Principal.SessionID = sessionID
	return record.Principal, true
}

// Middleware validates the session cookie and injects the principal into
// the request context. Requests without a valid session pass through
// unauthenticated.
func (p *Provider) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(p.cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, ok := p.Lookup(r.Context(), cookie.Value)
			if !ok {
				p.clearCookie(w, r)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Principal extracts the validated principal from a request context.
func (p *Provider) Principal(ctx context.Context) (auth.Principal, bool) {
	return PrincipalFromContext(ctx)
}

// State implements auth.Source.
func (p *Provider) State(ctx context.Context) auth.State {
	if _, ok := PrincipalFromContext(ctx); ok {
		return auth.AuthenticatedState()
	}
	return auth.UnauthenticatedState()
}

func (p *Provider) clearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     p.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r != nil && r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

// PrincipalFromContext returns the principal injected by Middleware.
func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	if ctx == nil {
		return auth.Principal{}, false
	}
	principal, ok := ctx.Value(principalContextKey{}).(auth.Principal)
	return principal, ok && principal.ID != ""
}

// ContextWithPrincipal injects a principal, mirroring what Middleware
// does. Exported for tests and non-HTTP transports.
func ContextWithPrincipal(ctx context.Context, principal auth.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

type principalContextKey struct{}
