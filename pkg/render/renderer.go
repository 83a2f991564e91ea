package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gatekit-dev/gatekit/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer handles server-side rendering of VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to a complete HTML string.
// A nil node renders as the empty string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		return r.renderText(w, node)
	case vdom.KindFragment:
		return r.renderFragment(w, node, depth)
	case vdom.KindComponent:
		return r.renderComponent(w, node, depth)
	case vdom.KindRaw:
		return r.renderRaw(w, node)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	// Void elements never carry children or a closing tag.
	if vdom.IsVoidElement(tag) {
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if r.config.Pretty && len(node.Children) > 0 {
		io.WriteString(w, "\n")
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if r.config.Pretty && len(node.Children) > 0 {
		r.writeIndent(w, depth)
	}
	if _, err := io.WriteString(w, "</"+tag+">"); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes writes element attributes in sorted order for
// deterministic output.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for k := range node.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]
		switch v := value.(type) {
		case nil:
			continue
		case bool:
			// Boolean attributes render as presence only.
			if v {
				if _, err := io.WriteString(w, " "+key); err != nil {
					return err
				}
			}
		case string:
			if _, err := io.WriteString(w, " "+key+`="`+escapeAttr(v)+`"`); err != nil {
				return err
			}
		default:
			if _, err := io.WriteString(w, " "+key+`="`+escapeAttr(fmt.Sprintf("%v", v))+`"`); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderText renders an escaped text node.
func (r *Renderer) renderText(w io.Writer, node *vdom.VNode) error {
	_, err := io.WriteString(w, escapeHTML(node.Text))
	return err
}

// renderRaw writes pre-rendered HTML without escaping.
func (r *Renderer) renderRaw(w io.Writer, node *vdom.VNode) error {
	_, err := io.WriteString(w, node.Text)
	return err
}

// renderFragment renders children without a wrapper element.
func (r *Renderer) renderFragment(w io.Writer, node *vdom.VNode, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

// renderComponent renders a nested component.
// A component returning nil renders as nothing.
func (r *Renderer) renderComponent(w io.Writer, node *vdom.VNode, depth int) error {
	if node.Comp == nil {
		return nil
	}
	return r.renderNode(w, node.Comp.Render(), depth)
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
