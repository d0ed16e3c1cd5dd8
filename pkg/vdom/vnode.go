package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
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

// VNode is the virtual view-tree node.
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

// Clone returns a deep copy of the tree rooted at v.
// Suspense boundaries cache clones so a stale snapshot can be handed out
// while a fresh render is pending, without aliasing live nodes.
func (v *VNode) Clone() *VNode {
	if v == nil {
		return nil
	}

	clone := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Key:  v.Key,
		Text: v.Text,
		Comp: v.Comp,
	}

	if v.Props != nil {
		clone.Props = make(Props, len(v.Props))
		for k, val := range v.Props {
			clone.Props[k] = val
		}
	}

	if v.Children != nil {
		clone.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			clone.Children[i] = child.Clone()
		}
	}

	return clone
}

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
