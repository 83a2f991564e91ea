package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/auth/jwtauth"
	"github.com/gatekit-dev/gatekit/pkg/auth/sessionauth"
	"github.com/gatekit-dev/gatekit/pkg/guard"
	"github.com/gatekit-dev/gatekit/pkg/httpguard"
	"github.com/gatekit-dev/gatekit/pkg/live"
	"github.com/gatekit-dev/gatekit/pkg/middleware"
	"github.com/gatekit-dev/gatekit/pkg/reactive"
	"github.com/gatekit-dev/gatekit/pkg/render"
	"github.com/gatekit-dev/gatekit/pkg/session"
	"github.com/gatekit-dev/gatekit/pkg/vdom"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		secret    string
		redisAddr string
		redirect  string
		useJWT    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Run a demo server with a guarded dashboard.

Visit / for the public page, /dashboard for the guarded page, and
/metrics for Prometheus metrics. POST to /auth/login to sign in,
/auth/logout to sign out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			slog.SetDefault(logger)

			srv, err := buildServer(addr, secret, redisAddr, redirect, useJWT)
			if err != nil {
				return err
			}

			logger.Info("gatekit demo listening", "addr", addr)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (enables --jwt)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for shared sessions (empty = in-memory)")
	cmd.Flags().StringVar(&redirect, "redirect", guard.DefaultRedirect, "Redirect target for denied access")
	cmd.Flags().BoolVar(&useJWT, "jwt", false, "Use the JWT cookie source instead of server sessions")

	return cmd
}

func buildServer(addr, secret, redisAddr, redirect string, useJWT bool) (*http.Server, error) {
	// Prime the metrics singleton so the guard observer records.
	middleware.Prometheus()

	// Shared demo state feeding the /live channel. Login and logout flip
	// it, so connected clients see the guarded fragment appear and vanish.
	liveState := reactive.NewSignal(auth.UnauthenticatedState())

	var (
		source       auth.Source
		authMW       func(http.Handler) http.Handler
		loginHandler http.HandlerFunc
	)

	if useJWT {
		if secret == "" {
			secret = "dev-only-secret"
			slog.Warn("no --secret given, using a development default")
		}
		provider, err := jwtauth.New([]byte(secret))
		if err != nil {
			return nil, err
		}
		source = provider
		authMW = provider.Middleware()
		loginHandler = jwtLogin(provider, liveState)
	} else {
		store, err := buildStore(redisAddr)
		if err != nil {
			return nil, err
		}
		provider, err := sessionauth.New(store, sessionauth.WithTTL(12*time.Hour))
		if err != nil {
			return nil, err
		}
		source = provider
		authMW = provider.Middleware()
		loginHandler = sessionLogin(provider, liveState)
	}

	g := guard.New(source, nil,
		guard.WithRedirect(redirect),
		guard.WithObserver(middleware.GuardObserver()),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(authMW)

	r.Get("/", page("Welcome", vdom.P(vdom.Text("Public page. Log in to see the dashboard."))))
	r.Get("/auth/login", page("Login", loginForm()))
	r.Post("/auth/login", loginHandler)
	r.Post("/auth/logout", logout(cookieNameFor(source), liveState))

	r.Group(func(r chi.Router) {
		r.Use(httpguard.Middleware(g))
		r.Get("/dashboard", page("Dashboard", vdom.P(vdom.Text("You are signed in."))))
	})

	r.Handle("/live", live.NewChannel(liveState,
		vdom.Div(
			vdom.H1(vdom.Text("Dashboard")),
			vdom.P(vdom.Text("You are signed in.")),
		),
	))

	r.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

func buildStore(redisAddr string) (session.Store, error) {
	if redisAddr == "" {
		return session.NewMemoryStore(), nil
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	return session.NewRedisStore(client), nil
}

func cookieNameFor(source auth.Source) string {
	switch p := source.(type) {
	case *jwtauth.Provider:
		return p.CookieName()
	case *sessionauth.Provider:
		return p.CookieName()
	default:
		return "session"
	}
}

// demoPrincipal is the identity every successful demo login receives.
func demoPrincipal(name string) auth.Principal {
	if name == "" {
		name = "demo"
	}
	return auth.Principal{
		ID:    name,
		Name:  name,
		Roles: []string{"user"},
	}
}

func jwtLogin(provider *jwtauth.Provider, liveState *reactive.Signal[auth.State]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := provider.Sign(demoPrincipal(r.FormValue("user")), time.Hour)
		if err != nil {
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     provider.CookieName(),
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		liveState.Set(auth.AuthenticatedState())
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func sessionLogin(provider *sessionauth.Provider, liveState *reactive.Signal[auth.State]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := provider.Issue(r.Context(), demoPrincipal(r.FormValue("user")))
		if err != nil {
			http.Error(w, "login failed", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     provider.CookieName(),
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		liveState.Set(auth.AuthenticatedState())
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}

func logout(cookieName string, liveState *reactive.Signal[auth.State]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:   cookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1,
		})
		liveState.Set(auth.UnauthenticatedState())
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func loginForm() *vdom.VNode {
	return vdom.Form(
		vdom.Action("/auth/login"),
		vdom.Method("post"),
		vdom.Input(vdom.Type("text"), vdom.Name("user"), vdom.A_("placeholder", "username")),
		vdom.Button(vdom.Type("submit"), vdom.Text("Sign in")),
	)
}

// page renders a static vdom page handler.
func page(title string, body *vdom.VNode) http.HandlerFunc {
	renderer := render.NewRenderer(render.RendererConfig{})
	node := vdom.Div(
		vdom.H1(vdom.Text(title)),
		body,
	)

	return func(w http.ResponseWriter, r *http.Request) {
		html, err := renderer.RenderToString(node)
		if err != nil {
			http.Error(w, "render failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<!DOCTYPE html><html><body>" + html + "</body></html>"))
	}
}
