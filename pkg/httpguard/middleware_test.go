package httpguard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/guard"
	"github.com/gatekit-dev/gatekit/pkg/middleware"
	"github.com/gatekit-dev/gatekit/pkg/vdom"
)

// metricsReg primes the metrics singleton with an isolated registry so
// redirect counts can be read back, whatever order the tests run in.
var metricsReg = func() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	middleware.Prometheus(middleware.WithRegistry(reg))
	return reg
}()

func redirectCount(t *testing.T) float64 {
	t.Helper()

	families, err := metricsReg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "gatekit_guard_redirects_total" {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatal("gatekit_guard_redirects_total not registered")
	return 0
}

func serve(t *testing.T, g *guard.Guard, method string) *httptest.ResponseRecorder {
	t.Helper()

	handler := Middleware(g)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("protected content"))
	}))

	req := httptest.NewRequest(method, "/dashboard", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestMiddlewareAllowed(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.AuthenticatedState()), nil)

	rr := serve(t, g, http.MethodGet)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "protected content") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestMiddlewareDeniedGetRedirects(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.UnauthenticatedState()), nil)

	rr := serve(t, g, http.MethodGet)
	if rr.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != guard.DefaultRedirect {
		t.Errorf("Location = %q, want %q", loc, guard.DefaultRedirect)
	}
	if strings.Contains(rr.Body.String(), "protected content") {
		t.Error("protected content leaked on denial")
	}
}

func TestMiddlewareDeniedCustomRedirect(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.UnauthenticatedState()), nil,
		guard.WithRedirect("/custom-login"))

	rr := serve(t, g, http.MethodGet)
	if loc := rr.Header().Get("Location"); loc != "/custom-login" {
		t.Errorf("Location = %q, want /custom-login", loc)
	}
}

func TestMiddlewareDeniedPostGets401(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.UnauthenticatedState()), nil)

	rr := serve(t, g, http.MethodPost)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestMiddlewareDeniedEveryRequestRedirects(t *testing.T) {
	// HTTP requests are independent; denial is not edge-triggered.
	g := guard.New(auth.StaticSource(auth.UnauthenticatedState()), nil)

	for i := 0; i < 3; i++ {
		rr := serve(t, g, http.MethodGet)
		if rr.Code != http.StatusSeeOther {
			t.Errorf("request %d: status = %d, want 303", i, rr.Code)
		}
	}
}

func TestMiddlewareDeniedRecordsRedirect(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.UnauthenticatedState()), nil)

	before := redirectCount(t)
	serve(t, g, http.MethodGet)
	if got := redirectCount(t) - before; got != 1 {
		t.Errorf("redirect counter delta after denied GET = %v, want 1", got)
	}

	// 401 responses are not redirects.
	before = redirectCount(t)
	serve(t, g, http.MethodPost)
	if got := redirectCount(t) - before; got != 0 {
		t.Errorf("redirect counter delta after denied POST = %v, want 0", got)
	}
}

func TestMiddlewareLoading(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.LoadingState()), nil)

	rr := serve(t, g, http.MethodGet)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `role="status"`) {
		t.Errorf("loading body missing role=status: %q", body)
	}
	if !strings.Contains(strings.ToLower(body), "loading") {
		t.Errorf("loading body missing loading text: %q", body)
	}
	if strings.Contains(body, "protected content") {
		t.Error("protected content leaked during loading")
	}
}

func TestMiddlewareLoadingCustomIndicator(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.LoadingState()), nil,
		guard.WithLoadingIndicator(vdom.Div(vdom.Role("status"), vdom.Text("Authenticating, loading session"))))

	rr := serve(t, g, http.MethodGet)
	if !strings.Contains(rr.Body.String(), "Authenticating, loading session") {
		t.Errorf("custom indicator not used: %q", rr.Body.String())
	}
}

func TestMiddlewareWithoutAuth(t *testing.T) {
	g := guard.New(auth.StaticSource(auth.UnauthenticatedState()), nil, guard.WithoutAuth())

	rr := serve(t, g, http.MethodGet)
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "protected content") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestMiddlewareObserver(t *testing.T) {
	var seen []guard.Decision
	g := guard.New(auth.StaticSource(auth.UnauthenticatedState()), nil,
		guard.WithObserver(func(d guard.Decision) { seen = append(seen, d) }))

	serve(t, g, http.MethodGet)
	serve(t, g, http.MethodGet)

	if len(seen) != 2 {
		t.Fatalf("observer called %d times, want 2", len(seen))
	}
	for i, d := range seen {
		if d != guard.DecisionDenied {
			t.Errorf("observation %d = %v, want denied", i, d)
		}
	}
}
