package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			if v.Key == "" {
				continue
			}
			if v.Key == "key" {
				if s, ok := v.Value.(string); ok {
					node.Key = s
				}
				continue
			}
			node.Props[v.Key] = v.Value
		case []Attr:
			for _, a := range v {
				if a.Key != "" {
					node.Props[a.Key] = a.Value
				}
			}
		default:
			appendChild(node, arg)
		}
	}

	return node
}

// El creates an element with an arbitrary tag.
func El(tag string, args ...any) *VNode { return createElement(tag, args) }

// Common elements. Applications with larger vocabularies use El directly.

func Div(args ...any) *VNode    { return createElement("div", args) }
func Span(args ...any) *VNode   { return createElement("span", args) }
func P(args ...any) *VNode      { return createElement("p", args) }
func Pre(args ...any) *VNode    { return createElement("pre", args) }
func H1(args ...any) *VNode     { return createElement("h1", args) }
func H2(args ...any) *VNode     { return createElement("h2", args) }
func Ul(args ...any) *VNode     { return createElement("ul", args) }
func Li(args ...any) *VNode     { return createElement("li", args) }
func A(args ...any) *VNode      { return createElement("a", args) }
func Img(args ...any) *VNode    { return createElement("img", args) }
func Button(args ...any) *VNode { return createElement("button", args) }
func Main(args ...any) *VNode   { return createElement("main", args) }
func Header(args ...any) *VNode { return createElement("header", args) }
func Footer(args ...any) *VNode { return createElement("footer", args) }

// Common attributes.

func Class(v string) Attr     { return Attr{Key: "class", Value: v} }
func ID(v string) Attr        { return Attr{Key: "id", Value: v} }
func Src(v string) Attr       { return Attr{Key: "src", Value: v} }
func Href(v string) Attr      { return Attr{Key: "href", Value: v} }
func Alt(v string) Attr       { return Attr{Key: "alt", Value: v} }
func Title(v string) Attr     { return Attr{Key: "title", Value: v} }
func Key(v string) Attr       { return Attr{Key: "key", Value: v} }
func Data(k, v string) Attr   { return Attr{Key: "data-" + k, Value: v} }
func AttrKV(k string, v any) Attr { return Attr{Key: k, Value: v} }
