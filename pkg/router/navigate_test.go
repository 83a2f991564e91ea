package router

import (
	"strings"
	"testing"
)

func TestNavigationRequestBuildURL(t *testing.T) {
	t.Run("plain path", func(t *testing.T) {
		nr := NavigationRequest{Path: "/dashboard"}
		url, err := nr.BuildURL()
		if err != nil {
			t.Fatalf("BuildURL failed: %v", err)
		}
		if url != "/dashboard" {
			t.Errorf("BuildURL() = %q", url)
		}
	})

	t.Run("with params", func(t *testing.T) {
		nr := NavigationRequest{
			Path:    "/search",
			Options: NavigateOptions{Params: map[string]any{"q": "go", "page": 2}},
		}
		url, err := nr.BuildURL()
		if err != nil {
			t.Fatalf("BuildURL failed: %v", err)
		}
		if !strings.Contains(url, "q=go") || !strings.Contains(url, "page=2") {
			t.Errorf("BuildURL() = %q, want q=go and page=2", url)
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		nr := NavigationRequest{Path: "://bad"}
		if _, err := nr.BuildURL(); err == nil {
			t.Error("expected error for invalid path")
		}
	})
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()

	if _, ok := rec.Last(); ok {
		t.Error("empty recorder should have no last call")
	}

	rec.Navigate("/a")
	rec.Navigate("/b", WithReplace(), WithParams(map[string]any{"x": 1}))

	calls := rec.Calls()
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	if calls[0].Path != "/a" || calls[0].Options.Replace {
		t.Errorf("first call = %+v", calls[0])
	}
	if calls[1].Path != "/b" || !calls[1].Options.Replace {
		t.Errorf("second call = %+v", calls[1])
	}
	if calls[1].Options.Params["x"] != 1 {
		t.Errorf("params = %v", calls[1].Options.Params)
	}

	last, ok := rec.Last()
	if !ok || last.Path != "/b" {
		t.Errorf("Last() = %+v, %v", last, ok)
	}

	rec.Reset()
	if len(rec.Calls()) != 0 {
		t.Error("Reset did not clear calls")
	}
}

func TestRecorderSnapshotIsolated(t *testing.T) {
	rec := NewRecorder()
	rec.Navigate("/a")

	calls := rec.Calls()
	calls[0].Path = "/mutated"

	if got := rec.Calls()[0].Path; got != "/a" {
		t.Errorf("snapshot mutation leaked: %q", got)
	}
}

func TestNavigatorFunc(t *testing.T) {
	var gotPath string
	nav := NavigatorFunc(func(path string, opts ...NavigateOption) {
		gotPath = path
	})
	nav.Navigate("/login")
	if gotPath != "/login" {
		t.Errorf("NavigatorFunc passed %q", gotPath)
	}
}
