package suspense

import (
	"strings"
	"testing"
)

func TestContextReadyWhenCountsBalance(t *testing.T) {
	tests := []struct {
		name string
		ops  string // 'b' = Begin, 'e' = End
		want bool
	}{
		{"new context", "", true},
		{"one outstanding", "b", false},
		{"balanced pair", "be", true},
		{"two outstanding", "bb", false},
		{"partially settled", "bbe", false},
		{"all settled", "bbee", true},
		{"interleaved", "bebe", true},
		{"resettles after new load", "beb", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewContext()
			for _, op := range tt.ops {
				if op == 'b' {
					c.Begin()
				} else {
					c.End()
				}
			}
			if c.Ready() != tt.want {
				t.Errorf("ops %q: Ready() = %v, want %v", tt.ops, c.Ready(), tt.want)
			}
		})
	}
}

func TestContextPendingCount(t *testing.T) {
	c := NewContext()
	c.Begin()
	c.Begin()
	c.End()
	if got := c.PendingCount(); got != 1 {
		t.Errorf("PendingCount = %d, want 1", got)
	}
}

func TestContextNegativeCountPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("End without Begin must panic, not clamp")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "LOOM E003") {
			t.Errorf("panic = %v, want LOOM E003 message", r)
		}
	}()

	c := NewContext()
	c.End()
}

func TestContextOnReadyImmediateWhenReady(t *testing.T) {
	c := NewContext()
	fired := false
	c.OnReady(func() { fired = true })
	if !fired {
		t.Error("OnReady on a ready context should fire immediately")
	}
}

func TestContextOnReadyFiresWhenCountReturnsToZero(t *testing.T) {
	c := NewContext()
	c.Begin()
	c.Begin()

	fired := 0
	c.OnReady(func() { fired++ })

	c.End()
	if fired != 0 {
		t.Fatal("waiter fired before all resources settled")
	}

	c.End()
	if fired != 1 {
		t.Errorf("waiter fired %d times, want 1", fired)
	}
}

func TestContextOnReadyOrder(t *testing.T) {
	c := NewContext()
	c.Begin()

	var order []int
	c.OnReady(func() { order = append(order, 1) })
	c.OnReady(func() { order = append(order, 2) })

	c.End()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("waiter order = %v, want [1 2]", order)
	}
}
