package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0, len(children)),
	}

	for _, child := range children {
		appendChild(node, child)
	}

	return node
}

// appendChild normalizes a child argument onto the node's child list.
func appendChild(node *VNode, child any) {
	switch v := child.(type) {
	case nil:
	case *VNode:
		if v != nil {
			node.Children = append(node.Children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				node.Children = append(node.Children, c)
			}
		}
	case string:
		node.Children = append(node.Children, Text(v))
	case Component:
		node.Children = append(node.Children, &VNode{
			Kind: KindComponent,
			Comp: v,
		})
	}
}
