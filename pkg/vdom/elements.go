package vdom

import "strings"

// voidElements are HTML elements that never carry children.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether tag is a void HTML element.
func IsVoidElement(tag string) bool {
	return voidElements[strings.ToLower(tag)]
}

// El creates an element node with the given tag.
//
// Arguments are interpreted by type: Attr and Props become attributes,
// *VNode, []*VNode, Component, and string become children. Nil arguments
// are ignored.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind: KindElement,
		Tag:  tag,
	}

	var children []any
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			if v.IsEmpty() {
				continue
			}
			if node.Props == nil {
				node.Props = make(Props)
			}
			node.Props[v.Key] = v.Value
		case Props:
			if node.Props == nil {
				node.Props = make(Props, len(v))
			}
			for k, val := range v {
				node.Props[k] = val
			}
		default:
			children = append(children, arg)
		}
	}

	appendChildren(node, children)
	return node
}

func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func A(args ...any) *VNode       { return El("a", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Button(args ...any) *VNode  { return El("button", args...) }
func Form(args ...any) *VNode    { return El("form", args...) }
func Input(args ...any) *VNode   { return El("input", args...) }
