package loom

import (
	"testing"

	"github.com/loomkit/loom/pkg/vdom"
)

func TestFacadeSignals(t *testing.T) {
	count := NewSignal(1)
	doubled := NewMemo(func() int { return count.Get() * 2 })

	if doubled.Get() != 2 {
		t.Errorf("doubled = %d", doubled.Get())
	}

	count.Set(5)
	if doubled.Get() != 10 {
		t.Errorf("doubled after set = %d", doubled.Get())
	}
}

func TestFacadeTransition(t *testing.T) {
	tr := NewTransition(TransitionConfig{
		Fallback: func(*Env) *VNode { return vdom.Text("loading") },
		Children: func(*Env) *VNode { return vdom.Text("content") },
	})

	env := NewEnv(NewOwner(nil), NewCursor())
	out := tr.Render(env)
	if out.Text != "content" {
		t.Errorf("render = %q", out.Text)
	}
}

func TestFacadeServerConfig(t *testing.T) {
	srv := NewServer(nil)
	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if DefaultServerConfig().Address != ":8080" {
		t.Error("default address changed")
	}
}
