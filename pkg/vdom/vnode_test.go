package vdom

import "testing"

func TestCloneIsDeep(t *testing.T) {
	orig := Div(Class("card"),
		H1(Text("Title")),
		Ul(Li(Text("a")), Li(Text("b"))),
	)

	clone := orig.Clone()

	if clone == orig {
		t.Fatal("Clone returned the same pointer")
	}

	// Mutating the clone must not affect the original.
	clone.Props["class"] = "changed"
	clone.Children[0].Text = "changed"
	clone.Children[1].Children[0].Children[0].Text = "changed"

	if orig.Props["class"] != "card" {
		t.Errorf("original props mutated: %v", orig.Props["class"])
	}
	if got := orig.Children[1].Children[0].Children[0].Text; got != "a" {
		t.Errorf("original grandchild mutated: %q", got)
	}
}

func TestCloneNil(t *testing.T) {
	var v *VNode
	if v.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestFragmentNormalizesChildren(t *testing.T) {
	frag := Fragment(
		nil,
		Text("one"),
		"two",
		[]*VNode{Text("three"), nil, Text("four")},
		Func(func() *VNode { return Text("five") }),
	)

	if frag.Kind != KindFragment {
		t.Fatalf("kind = %v, want Fragment", frag.Kind)
	}
	if len(frag.Children) != 5 {
		t.Fatalf("got %d children, want 5", len(frag.Children))
	}
	if frag.Children[1].Text != "two" {
		t.Errorf("string child not converted: %q", frag.Children[1].Text)
	}
	if frag.Children[4].Kind != KindComponent {
		t.Errorf("component child kind = %v", frag.Children[4].Kind)
	}
}

func TestCreateElementAttrs(t *testing.T) {
	node := Div(Class("box"), Key("k1"), Data("role", "panel"), Text("hi"))

	if node.Tag != "div" {
		t.Errorf("tag = %q", node.Tag)
	}
	if node.Key != "k1" {
		t.Errorf("key = %q", node.Key)
	}
	if node.Props["class"] != "box" {
		t.Errorf("class = %v", node.Props["class"])
	}
	if node.Props["data-role"] != "panel" {
		t.Errorf("data-role = %v", node.Props["data-role"])
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key must not appear in props")
	}
	if len(node.Children) != 1 || node.Children[0].Text != "hi" {
		t.Errorf("children = %v", node.Children)
	}
}

func TestVoidElements(t *testing.T) {
	if !IsVoidElement("img") {
		t.Error("img should be void")
	}
	if IsVoidElement("div") {
		t.Error("div should not be void")
	}
}
