package vdom

// Attribute constructors for the attributes the toolkit itself uses.
// Anything else can be built with A_ directly.

// A_ creates an arbitrary attribute.
func A_(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

func Class(value string) Attr    { return Attr{Key: "class", Value: value} }
func ID(value string) Attr       { return Attr{Key: "id", Value: value} }
func Href(value string) Attr     { return Attr{Key: "href", Value: value} }
func Role(value string) Attr     { return Attr{Key: "role", Value: value} }
func AriaLive(value string) Attr { return Attr{Key: "aria-live", Value: value} }
func Type(value string) Attr     { return Attr{Key: "type", Value: value} }
func Name(value string) Attr     { return Attr{Key: "name", Value: value} }
func Value(value string) Attr    { return Attr{Key: "value", Value: value} }
func Action(value string) Attr   { return Attr{Key: "action", Value: value} }
func Method(value string) Attr   { return Attr{Key: "method", Value: value} }
