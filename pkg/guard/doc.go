// Package guard implements the authentication guard component.
//
// A Guard wraps opaque renderable content and decides, on every
// evaluation, one of three outcomes: show a loading placeholder, render
// the content, or trigger a navigation to a redirect target and render
// nothing. State comes from an injected auth.Source; navigation goes
// through an injected router.Navigator. The guard itself never mutates
// either.
//
//	src := auth.StaticSource(auth.UnauthenticatedState())
//	nav := router.NewRecorder()
//	g := guard.New(src, nav, guard.WithRedirect("/custom-login"))
//	node := g.Render(ctx, content) // nil; nav recorded "/custom-login"
//
// Navigation fires once per transition into the denied state. Repeated
// evaluations while access stays denied do not renavigate unless the
// Renavigate option is set.
package guard
