package render

import (
	"strings"
	"testing"

	"github.com/loomkit/loom/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElementWithAttributes(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("card"), vdom.ID("main"), vdom.Text("content"))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Attributes are sorted for deterministic output.
	want := `<div class="card" id="main">content</div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderAttrEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Title(`a"b`))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, `title="a&quot;b"`) {
		t.Errorf("attribute not escaped: %q", html)
	}
}

func TestRenderVoidElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Img(vdom.Src("/cat.jpg")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<img src="/cat.jpg">`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderBooleanAttr(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"true renders bare", vdom.Button(vdom.AttrKV("disabled", true)), `<button disabled></button>`},
		{"false omitted", vdom.Button(vdom.AttrKV("disabled", false)), `<button></button>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if html != tt.want {
				t.Errorf("got %q, want %q", html, tt.want)
			}
		})
	}
}

func TestRenderFragmentNoWrapper(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Fragment(vdom.Span("a"), vdom.Span("b"))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `<span>a</span><span>b</span>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderRawUnescaped(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Raw("<!--marker-->"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<!--marker-->" {
		t.Errorf("got %q", html)
	}
}

func TestRenderComponent(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	comp := vdom.Func(func() *vdom.VNode {
		return vdom.P(vdom.Text("from component"))
	})
	html, err := renderer.RenderToString(vdom.Fragment(comp))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<p>from component</p>" {
		t.Errorf("got %q", html)
	}
}

func TestRenderInternalPropsSkipped(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.AttrKV("_internal", "x"), vdom.Key("k"))
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "<div></div>" {
		t.Errorf("internal props leaked: %q", html)
	}
}
