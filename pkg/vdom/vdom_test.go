package vdom

import "testing"

func TestEl(t *testing.T) {
	node := El("div",
		Class("card"),
		ID("main"),
		Text("hello"),
	)

	if node.Kind != KindElement {
		t.Errorf("Kind = %v, want KindElement", node.Kind)
	}
	if node.Tag != "div" {
		t.Errorf("Tag = %q, want div", node.Tag)
	}
	if node.Props["class"] != "card" {
		t.Errorf("class = %v, want card", node.Props["class"])
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v, want main", node.Props["id"])
	}
	if len(node.Children) != 1 || node.Children[0].Text != "hello" {
		t.Errorf("unexpected children: %v", node.Children)
	}
}

func TestElChildNormalization(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want int
	}{
		{
			name: "nil argument skipped",
			args: []any{nil, Text("a")},
			want: 1,
		},
		{
			name: "nil vnode skipped",
			args: []any{(*VNode)(nil), Text("a")},
			want: 1,
		},
		{
			name: "string becomes text child",
			args: []any{"plain"},
			want: 1,
		},
		{
			name: "slice of nodes flattened",
			args: []any{[]*VNode{Text("a"), nil, Text("b")}},
			want: 2,
		},
		{
			name: "component wrapped",
			args: []any{Func(func() *VNode { return Text("c") })},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := El("div", tt.args...)
			if len(node.Children) != tt.want {
				t.Errorf("got %d children, want %d", len(node.Children), tt.want)
			}
		})
	}
}

func TestElMergesProps(t *testing.T) {
	node := El("input",
		Props{"type": "text", "disabled": true},
		Name("email"),
	)

	if node.Props["type"] != "text" {
		t.Errorf("type = %v", node.Props["type"])
	}
	if node.Props["disabled"] != true {
		t.Errorf("disabled = %v", node.Props["disabled"])
	}
	if node.Props["name"] != "email" {
		t.Errorf("name = %v", node.Props["name"])
	}
}

func TestEmptyAttrIgnored(t *testing.T) {
	node := El("div", Attr{})
	if len(node.Props) != 0 {
		t.Errorf("empty attr created props: %v", node.Props)
	}
}

func TestTextf(t *testing.T) {
	node := Textf("hello %s, you have %d messages", "ana", 3)
	if node.Text != "hello ana, you have 3 messages" {
		t.Errorf("Text = %q", node.Text)
	}
	if node.Kind != KindText {
		t.Errorf("Kind = %v, want KindText", node.Kind)
	}
}

func TestFragment(t *testing.T) {
	f := Fragment(Text("a"), nil, Text("b"))
	if f.Kind != KindFragment {
		t.Errorf("Kind = %v, want KindFragment", f.Kind)
	}
	if len(f.Children) != 2 {
		t.Errorf("got %d children, want 2", len(f.Children))
	}
}

func TestConditionalHelpers(t *testing.T) {
	node := Text("x")
	alt := Text("y")

	if If(true, node) != node {
		t.Error("If(true) should return node")
	}
	if If(false, node) != nil {
		t.Error("If(false) should return nil")
	}
	if IfElse(true, node, alt) != node {
		t.Error("IfElse(true) should return first")
	}
	if IfElse(false, node, alt) != alt {
		t.Error("IfElse(false) should return second")
	}
	if Unless(false, node) != node {
		t.Error("Unless(false) should return node")
	}
	if Unless(true, node) != nil {
		t.Error("Unless(true) should return nil")
	}
}

func TestWhenLazy(t *testing.T) {
	called := false
	When(false, func() *VNode {
		called = true
		return Text("never")
	})
	if called {
		t.Error("When(false) must not call fn")
	}

	got := When(true, func() *VNode { return Text("yes") })
	if got == nil || got.Text != "yes" {
		t.Errorf("When(true) = %v", got)
	}
}

func TestMaybe(t *testing.T) {
	if Maybe(nil).Kind != KindFragment {
		t.Error("Maybe(nil) should return an empty fragment")
	}
	node := Text("x")
	if Maybe(node) != node {
		t.Error("Maybe should pass non-nil through")
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("input") {
		t.Error("input is a void element")
	}
	if !IsVoidElement("BR") {
		t.Error("void check should be case-insensitive")
	}
	if IsVoidElement("div") {
		t.Error("div is not a void element")
	}
}

func TestFuncComponent(t *testing.T) {
	c := Func(func() *VNode { return Text("rendered") })
	if got := c.Render(); got == nil || got.Text != "rendered" {
		t.Errorf("Render() = %v", got)
	}

	nilComp := Func(func() *VNode { return nil })
	if got := nilComp.Render(); got != nil {
		t.Errorf("nil-returning component rendered %v", got)
	}
}

func TestVKindString(t *testing.T) {
	tests := []struct {
		k    VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{KindRaw, "Raw"},
		{VKind(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("VKind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}
