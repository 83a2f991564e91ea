package guard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/router"
	"github.com/gatekit-dev/gatekit/pkg/server"
	"github.com/gatekit-dev/gatekit/pkg/vdom"
)

// DefaultRedirect is the redirect target used when none is configured.
const DefaultRedirect = "/auth/login"

// Decision is the outcome of one guard evaluation.
type Decision uint8

const (
	// DecisionLoading renders the loading indicator; children are withheld.
	DecisionLoading Decision = iota

	// DecisionDenied renders nothing and triggers a navigation to the
	// redirect target.
	DecisionDenied

	// DecisionAllowed renders the wrapped children verbatim.
	DecisionAllowed
)

// String returns the string representation of the Decision.
func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionDenied:
		return "denied"
	case DecisionAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// Config holds the guard policy. It is immutable after New.
type Config struct {
	// RequireAuth controls whether unauthenticated access is denied.
	// Default: true.
	RequireAuth bool

	// RedirectTo is the navigation target on denial.
	// Default: DefaultRedirect.
	RedirectTo string

	// AllowedRedirectHosts lists hosts permitted for absolute redirect
	// targets. Empty means absolute targets are rejected and replaced
	// with DefaultRedirect.
	AllowedRedirectHosts []string

	// LoadingIndicator overrides the default loading placeholder.
	LoadingIndicator *vdom.VNode

	// Renavigate fires navigation on every denied evaluation instead of
	// only on the transition into the denied state.
	Renavigate bool

	// Observer, if set, is called with the decision of every evaluation.
	Observer func(Decision)
}

// Option configures a Guard.
type Option func(*Config)

// WithoutAuth disables the authentication requirement.
// The guard then renders children regardless of authentication state
// (loading still shows the indicator).
func WithoutAuth() Option {
	return func(c *Config) {
		c.RequireAuth = false
	}
}

// WithRedirect sets the navigation target used on denial.
func WithRedirect(path string) Option {
	return func(c *Config) {
		if path != "" {
			c.RedirectTo = path
		}
	}
}

// WithAllowedRedirectHosts permits absolute redirect targets on the
// given hosts.
func WithAllowedRedirectHosts(hosts ...string) Option {
	return func(c *Config) {
		c.AllowedRedirectHosts = hosts
	}
}

// WithLoadingIndicator overrides the loading placeholder. The node should
// keep role="status" and a "loading" text so assistive technology and
// tests can find it.
func WithLoadingIndicator(node *vdom.VNode) Option {
	return func(c *Config) {
		c.LoadingIndicator = node
	}
}

// Renavigate makes the guard fire navigation on every denied evaluation,
// not only on the transition edge.
func Renavigate() Option {
	return func(c *Config) {
		c.Renavigate = true
	}
}

// WithObserver registers a callback invoked with every evaluation's
// decision. Used by the metrics middleware.
func WithObserver(fn func(Decision)) Option {
	return func(c *Config) {
		c.Observer = fn
	}
}

// Guard decides whether wrapped content may render based on externally
// supplied authentication state. It holds no state beyond the last
// decision, which it tracks to fire navigation once per transition into
// the denied state.
type Guard struct {
	source auth.Source
	nav    router.Navigator
	cfg    Config

	mu        sync.Mutex
	wasDenied bool
}

// New creates a guard reading state from source and navigating via nav.
// A nil nav is allowed; denial then renders nothing without a side effect.
func New(source auth.Source, nav router.Navigator, opts ...Option) *Guard {
	cfg := Config{
		RequireAuth: true,
		RedirectTo:  DefaultRedirect,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Guard{
		source: source,
		nav:    nav,
		cfg:    cfg,
	}
}

// Config returns a copy of the guard's configuration.
func (g *Guard) Config() Config {
	return g.cfg
}

// Decide computes the decision for the current state without side
// effects. Transport adapters that handle redirects themselves use this
// instead of Evaluate.
func (g *Guard) Decide(ctx context.Context) Decision {
	state := g.readState(ctx)

	switch {
	case state.Loading:
		return DecisionLoading
	case g.cfg.RequireAuth && !state.Authenticated:
		return DecisionDenied
	default:
		return DecisionAllowed
	}
}

// Evaluate computes the decision and performs the navigation side effect
// on a transition into the denied state. With the Renavigate option the
// navigation fires on every denied evaluation.
func (g *Guard) Evaluate(ctx context.Context) Decision {
	decision := g.Decide(ctx)

	g.mu.Lock()
	denied := decision == DecisionDenied
	fire := denied && (g.cfg.Renavigate || !g.wasDenied)
	g.wasDenied = denied
	g.mu.Unlock()

	if fire && g.nav != nil {
		g.nav.Navigate(g.RedirectTarget())
	}

	if g.cfg.Observer != nil {
		g.cfg.Observer(decision)
	}

	return decision
}

// Render evaluates the guard and returns the node to render:
// the loading indicator, nil on denial, or children verbatim.
// Nil children are valid and render as nothing when allowed.
func (g *Guard) Render(ctx context.Context, children *vdom.VNode) *vdom.VNode {
	switch g.Evaluate(ctx) {
	case DecisionLoading:
		return g.loadingIndicator()
	case DecisionDenied:
		return nil
	default:
		return children
	}
}

// Wrap returns a component rendering children under this guard's policy.
// Each Render call re-evaluates the decision, so the component can be
// rendered repeatedly as external state changes.
func (g *Guard) Wrap(children *vdom.VNode) vdom.Component {
	return g.WrapContext(context.Background(), children)
}

// WrapContext is Wrap with an explicit context passed to the auth source.
func (g *Guard) WrapContext(ctx context.Context, children *vdom.VNode) vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		return g.Render(ctx, children)
	})
}

// RedirectTarget resolves the configured redirect target: relative paths
// are canonicalized, absolute URLs are checked against the allowlist.
// Invalid targets fall back to DefaultRedirect.
func (g *Guard) RedirectTarget() string {
	target := g.cfg.RedirectTo
	if target == "" {
		return DefaultRedirect
	}

	if server.IsExternalRedirect(target) {
		validated, ok := server.ValidateExternalRedirectURL(target, g.cfg.AllowedRedirectHosts)
		if !ok {
			slog.Warn("gatekit/guard: redirect target rejected",
				"target", target,
				"hint", "absolute redirect URLs must be allowlisted via WithAllowedRedirectHosts",
			)
			return DefaultRedirect
		}
		return validated
	}

	canonical, err := router.CanonicalPath(target)
	if err != nil {
		slog.Warn("gatekit/guard: invalid redirect path", "target", target, "err", err)
		return DefaultRedirect
	}
	return canonical
}

// readState reads and resolves the source state. A nil source reports
// unknown, which resolves to unauthenticated.
func (g *Guard) readState(ctx context.Context) auth.State {
	if g.source == nil {
		return auth.UnknownState().Resolve()
	}
	return g.source.State(ctx).Resolve()
}

// loadingIndicator returns the configured or default loading placeholder.
func (g *Guard) loadingIndicator() *vdom.VNode {
	if g.cfg.LoadingIndicator != nil {
		return g.cfg.LoadingIndicator
	}
	return DefaultLoadingIndicator()
}

// DefaultLoadingIndicator returns the standard loading placeholder:
// a div with role="status" announcing "Loading...".
func DefaultLoadingIndicator() *vdom.VNode {
	return vdom.Div(
		vdom.Role("status"),
		vdom.AriaLive("polite"),
		vdom.Text("Loading..."),
	)
}
