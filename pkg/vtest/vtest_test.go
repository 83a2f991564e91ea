package vtest

import (
	"testing"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/vdom"
)

type demoUser struct {
	Name string
}

func TestCtxBuilder(t *testing.T) {
	ctx := NewCtx().
		WithUser(&demoUser{Name: "ana"}).
		WithData("theme", "dark").
		WithPath("/dashboard").
		Build()

	if ctx.Path() != "/dashboard" {
		t.Errorf("Path() = %q", ctx.Path())
	}

	user, ok := auth.Get[*demoUser](ctx.Session())
	if !ok || user.Name != "ana" {
		t.Errorf("user = %+v, ok = %v", user, ok)
	}

	if got := ctx.Session().Get("theme"); got != "dark" {
		t.Errorf("theme = %v", got)
	}
}

func TestCtxWithUser(t *testing.T) {
	ctx := CtxWithUser(&demoUser{Name: "bo"})
	if ctx.User() == nil {
		t.Error("User() should resolve the session-stored user")
	}
}

func TestRenderToString(t *testing.T) {
	html := RenderToString(vdom.Div(vdom.Class("x"), vdom.Text("hi")))
	if html != `<div class="x">hi</div>` {
		t.Errorf("RenderToString = %q", html)
	}
	if RenderToString(nil) != "" {
		t.Error("nil node should render empty")
	}
}

func TestExpectHelpers(t *testing.T) {
	node := vdom.Div(vdom.Role("status"), vdom.Text("Loading..."))

	ExpectContains(t, node, "Loading")
	ExpectNotContains(t, node, "dashboard")
	ExpectElement(t, node, "div")
	ExpectAttribute(t, node, "role", "status")
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("truncate long = %q", got)
	}
}
