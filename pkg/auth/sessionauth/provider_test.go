package sessionauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/session"
)

func newTestProvider(t *testing.T, opts ...Option) *Provider {
	t.Helper()

	store := session.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	p, err := New(store, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNewRequiresStore(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoStore) {
		t.Errorf("got %v, want ErrNoStore", err)
	}
}

func TestIssueAndLookup(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	in := auth.Principal{ID: "u1", Name: "User One", Roles: []string{"user"}}
	id, err := p.Issue(ctx, in)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if id == "" {
		t.Fatal("Issue returned empty session ID")
	}

	out, ok := p.Lookup(ctx, id)
	if !ok {
		t.Fatal("Lookup failed for issued session")
	}
	if out.ID != "u1" || out.Name != "User One" {
		t.Errorf("principal mismatch: %+v", out)
	}
	if out.SessionID != id {
		t.Errorf("SessionID = %q, want %q", out.SessionID, id)
	}
}

func TestLookupMissing(t *testing.T) {
	p := newTestProvider(t)

	if _, ok := p.Lookup(context.Background(), "nope"); ok {
		t.Error("Lookup of unknown session should fail")
	}
	if _, ok := p.Lookup(context.Background(), ""); ok {
		t.Error("Lookup of empty ID should fail")
	}
}

func TestLookupExpired(t *testing.T) {
	store := session.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	p, err := New(store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	id, _ := p.Issue(ctx, auth.Principal{ID: "u1"})

	// Rewrite the stored record with a past expiry. The store-level TTL is
	// long, so only the record's own deadline triggers rejection.
	stale := []byte(`{"principal":{"id":"u1"},"expires_at":"2000-01-01T00:00:00Z"}`)
	store.Save(ctx, id, stale, time.Now().Add(time.Hour))

	if _, ok := p.Lookup(ctx, id); ok {
		t.Error("Lookup of expired record should fail")
	}
}

func TestLookupCorruptRecord(t *testing.T) {
	store := session.NewMemoryStore()
	t.Cleanup(func() { store.Close() })

	p, _ := New(store)
	ctx := context.Background()

	store.Save(ctx, "bad", []byte("{not json"), time.Now().Add(time.Hour))
	if _, ok := p.Lookup(ctx, "bad"); ok {
		t.Error("Lookup of corrupt record should fail")
	}
}

func TestRevoke(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	id, _ := p.Issue(ctx, auth.Principal{ID: "u1"})
	if err := p.Revoke(ctx, id); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	if _, ok := p.Lookup(ctx, id); ok {
		t.Error("Lookup after Revoke should fail")
	}
}

func TestMiddleware(t *testing.T) {
	p := newTestProvider(t, WithCookieName("sid"))
	ctx := context.Background()

	var gotPrincipal auth.Principal
	var gotOK bool
	handler := p.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal, gotOK = PrincipalFromContext(r.Context())
	}))

	t.Run("valid cookie", func(t *testing.T) {
		id, _ := p.Issue(ctx, auth.Principal{ID: "u1"})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: id})

		handler.ServeHTTP(httptest.NewRecorder(), req)

		if !gotOK || gotPrincipal.ID != "u1" {
			t.Errorf("principal = %+v, ok = %v", gotPrincipal, gotOK)
		}
	})

	t.Run("invalid cookie is cleared", func(t *testing.T) {
		gotOK = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "stale"})

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if gotOK {
			t.Error("stale session reported a principal")
		}

		cleared := false
		for _, c := range rr.Result().Cookies() {
			if c.Name == "sid" && c.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Error("stale session cookie was not cleared")
		}
	})

	t.Run("no cookie passes through", func(t *testing.T) {
		gotOK = false
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if gotOK {
			t.Error("request without cookie reported a principal")
		}
	})
}

func TestState(t *testing.T) {
	p := newTestProvider(t)

	if state := p.State(context.Background()); state.Authenticated {
		t.Errorf("empty context state = %+v", state)
	}

	ctx := ContextWithPrincipal(context.Background(), auth.Principal{ID: "u1"})
	if state := p.State(ctx); !state.Authenticated {
		t.Errorf("principal context state = %+v", state)
	}
}
