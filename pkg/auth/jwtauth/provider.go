package jwtauth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gatekit-dev/gatekit/pkg/auth"
)

// Claims is the JWT claim set the provider issues and validates.
type Claims struct {
	Email    string   `json:"email,omitempty"`
	Name     string   `json:"name,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	TenantID string   `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// ErrNoSecret is returned when a provider is constructed without a secret.
var ErrNoSecret = errors.New("jwtauth: signing secret is required")

// Provider validates an HS256 JWT carried in a cookie and exposes the
// result as an auth.Source. Expired or malformed tokens resolve to an
// unauthenticated state; they never produce an error page.
type Provider struct {
	secret     []byte
	cookieName string
	leeway     time.Duration
}

// Option configures a Provider.
type Option func(*Provider)

// WithCookieName sets the cookie carrying the token. Default: "token".
func WithCookieName(name string) Option {
	return func(p *Provider) {
		if name != "" {
			p.cookieName = name
		}
	}
}

// WithLeeway sets the clock skew tolerance for expiry checks.
func WithLeeway(d time.Duration) Option {
	return func(p *Provider) {
		p.leeway = d
	}
}

// New creates a JWT cookie provider with the given HS256 secret.
func New(secret []byte, opts ...Option) (*Provider, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	p := &Provider{
		secret:     secret,
		cookieName: "token",
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

// Middleware validates the token cookie and injects the principal into
// the request context. Requests without a valid token pass through
// unauthenticated.
func (p *Provider) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(p.cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := p.Validate(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalContextKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Validate parses and verifies a token, returning the principal it carries.
func (p *Provider) Validate(token string) (auth.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, p.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(p.leeway),
	)
	if err != nil {
		return auth.Principal{}, err
	}
	if !parsed.Valid {
		return auth.Principal{}, jwt.ErrTokenUnverifiable
	}

	principal := auth.Principal{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Roles:    claims.Roles,
		TenantID: claims.TenantID,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAtUnixMs = claims.ExpiresAt.UnixMilli()
	}
	return principal, nil
}

// Sign issues a token for the given principal with the given lifetime.
// Login handlers set the result as the token cookie.
func (p *Provider) Sign(principal auth.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:    principal.Email,
		Name:     principal.Name,
		Roles:    principal.Roles,
		TenantID: principal.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// Principal extracts the validated principal from a request context.
func (p *Provider) Principal(ctx context.Context) (auth.Principal, bool) {
	return PrincipalFromContext(ctx)
}

// State implements auth.Source: a valid, unexpired principal on the
// context reports authenticated; anything else reports unauthenticated.
// JWT validation is synchronous, so the state is never loading.
func (p *Provider) State(ctx context.Context) auth.State {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return auth.UnauthenticatedState()
	}
	if principal.ExpiresAtUnixMs > 0 && principal.ExpiresAtUnixMs <= time.Now().UnixMilli() {
		return auth.UnauthenticatedState()
	}
	return auth.AuthenticatedState()
}

func (p *Provider) keyFunc(token *jwt.Token) (any, error) {
	return p.secret, nil
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
