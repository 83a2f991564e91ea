package live

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/gatekit-dev/gatekit/pkg/auth"
	"github.com/gatekit-dev/gatekit/pkg/guard"
	"github.com/gatekit-dev/gatekit/pkg/middleware"
	"github.com/gatekit-dev/gatekit/pkg/reactive"
	"github.com/gatekit-dev/gatekit/pkg/render"
	"github.com/gatekit-dev/gatekit/pkg/router"
	"github.com/gatekit-dev/gatekit/pkg/vdom"
)

// Frame is one message pushed to the client.
type Frame struct {
	// Type is "render" or "navigate".
	Type string `json:"type"`

	// HTML is the full guarded fragment for render frames.
	// Empty HTML means the guard currently renders nothing.
	HTML string `json:"html,omitempty"`

	// Path is the navigation target for navigate frames.
	Path string `json:"path,omitempty"`
}

// Frame types.
const (
	FrameRender   = "render"
	FrameNavigate = "navigate"
)

// Channel serves a guarded fragment over a WebSocket. Every change of the
// auth state signal re-evaluates the guard and pushes a frame: a render
// frame with the new HTML, preceded by a navigate frame when the guard
// transitions into the denied state.
type Channel struct {
	signal   *reactive.Signal[auth.State]
	children *vdom.VNode
	opts     []guard.Option
	upgrader websocket.Upgrader
}

// ChannelOption configures a Channel.
type ChannelOption func(*Channel)

// WithGuardOptions passes options to the per-connection guard.
func WithGuardOptions(opts ...guard.Option) ChannelOption {
	return func(c *Channel) {
		c.opts = append(c.opts, opts...)
	}
}

// WithCheckOrigin sets the WebSocket origin check.
// The default accepts same-origin requests only.
func WithCheckOrigin(check func(r *http.Request) bool) ChannelOption {
	return func(c *Channel) {
		c.upgrader.CheckOrigin = check
	}
}

// NewChannel creates a channel serving children guarded by the state in
// signal. Each connection gets its own guard, so transition edges are
// tracked per client.
func NewChannel(signal *reactive.Signal[auth.State], children *vdom.VNode, opts ...ChannelOption) *Channel {
	c := &Channel{
		signal:   signal,
		children: children,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ServeHTTP upgrades the request and streams frames until the client
// disconnects.
func (c *Channel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		slog.Debug("gatekit/live: upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	send := func(frame Frame) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(frame); err != nil {
			slog.Debug("gatekit/live: write failed", "err", err)
		}
	}

	// Denials become navigate frames via the injected navigator.
	nav := router.NavigatorFunc(func(path string, _ ...router.NavigateOption) {
		middleware.RecordRedirect()
		send(Frame{Type: FrameNavigate, Path: path})
	})

	g := guard.New(auth.SignalSource{Signal: c.signal}, nav, c.opts...)
	renderer := render.NewRenderer(render.RendererConfig{})
	ctx := r.Context()

	// The effect reads the signal through the guard's source, so it
	// re-runs on every auth state change.
	effect := reactive.CreateEffect(func() reactive.Cleanup {
		node := g.Render(ctx, c.children)
		html, err := renderer.RenderToString(node)
		if err != nil {
			slog.Error("gatekit/live: render failed", "err", err)
			return nil
		}
		send(Frame{Type: FrameRender, HTML: html})
		return nil
	})
	defer effect.Dispose()

	// Block until the client goes away. Inbound payloads are ignored;
	// the read loop only surfaces the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
