package vtest

import (
	"strings"
	"testing"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/render"
	"github.com/gatekit-dev/gatekit/pkg/server"
	"github.com/gatekit-dev/gatekit/pkg/vdom"
)

// CtxBuilder allows fluent construction of test contexts.
type CtxBuilder struct {
	session *server.Session
	opts    []server.CtxOption
}

// NewCtx creates a new context builder for testing.
//
// Example:
//
//	ctx := vtest.NewCtx().
//	    WithUser(&User{ID: "123"}).
//	    WithPath("/dashboard").
//	    Build()
func NewCtx() *CtxBuilder {
	return &CtxBuilder{
		session: server.NewMockSession(),
	}
}

// WithUser injects an authenticated user into the session.
// Uses the auth package's SessionKey for storage.
func (b *CtxBuilder) WithUser(user any) *CtxBuilder {
	auth.Set(b.session, user)
	return b
}

// WithData injects arbitrary data into the session.
func (b *CtxBuilder) WithData(key string, val any) *CtxBuilder {
	b.session.Set(key, val)
	return b
}

// WithPath sets the current request path.
func (b *CtxBuilder) WithPath(path string) *CtxBuilder {
	b.opts = append(b.opts, server.WithPath(path))
	return b
}

// Build returns the final context for use in tests.
func (b *CtxBuilder) Build() server.Ctx {
	return server.NewTestContext(b.session, b.opts...)
}

// CtxWithUser is a shorthand for NewCtx().WithUser(user).Build()
func CtxWithUser(user any) server.Ctx {
	return NewCtx().WithUser(user).Build()
}

// RenderToString renders a VNode and returns the HTML string.
// This is useful for asserting on rendered output.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, comp.Render(), "Welcome Admin")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
