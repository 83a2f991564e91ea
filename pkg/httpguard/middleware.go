package httpguard

import (
	"net/http"

	"github.com/gatekit-dev/gatekit/pkg/guard"
	"github.com/gatekit-dev/gatekit/pkg/middleware"
	"github.com/gatekit-dev/gatekit/pkg/render"
)

// Middleware adapts a guard to net/http. Each request is decided
// independently (HTTP has no transition edges, so every denied request
// redirects):
//
//   - loading: responds 200 with the loading indicator HTML
//   - denied: redirects GET/HEAD with 303 to the redirect target,
//     responds 401 otherwise
//   - allowed: passes through to the next handler
//
// Mount it like any chi middleware:
//
//	r := chi.NewRouter()
//	r.Use(provider.Middleware()) // populate the request context first
//	r.With(httpguard.Middleware(g)).Get("/dashboard", dashboard)
func Middleware(g *guard.Guard) func(http.Handler) http.Handler {
	renderer := render.NewRenderer(render.RendererConfig{})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg := g.Config()
			decision := g.Decide(r.Context())
			if cfg.Observer != nil {
				cfg.Observer(decision)
			}

			switch decision {
			case guard.DecisionLoading:
				indicator := cfg.LoadingIndicator
				if indicator == nil {
					indicator = guard.DefaultLoadingIndicator()
				}
				html, err := renderer.RenderToString(indicator)
				if err != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(html))

			case guard.DecisionDenied:
				if r.Method == http.MethodGet || r.Method == http.MethodHead {
					middleware.RecordRedirect()
					http.Redirect(w, r, g.RedirectTarget(), http.StatusSeeOther)
					return
				}
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
