package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <a>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindComponent             // Nested component
	KindRaw                   // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
}

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Component is anything that can render to a VNode.
// A Component may return nil, which renders as nothing.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
