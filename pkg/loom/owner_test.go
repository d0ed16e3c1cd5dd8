package loom

import "testing"

func TestOwnerDisposeRunsCleanupsInReverse(t *testing.T) {
	o := NewOwner(nil)

	var order []int
	o.OnCleanup(func() { order = append(order, 1) })
	o.OnCleanup(func() { order = append(order, 2) })

	o.Dispose()

	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("cleanup order = %v, want [2 1]", order)
	}
	if !o.IsDisposed() {
		t.Error("owner should be disposed")
	}
}

func TestOnCleanupAfterDisposeRunsImmediately(t *testing.T) {
	o := NewOwner(nil)
	o.Dispose()

	ran := false
	o.OnCleanup(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after dispose must run immediately")
	}
}

func TestOwnerDisposesChildren(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	grandchild := NewOwner(child)

	root.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("descendants should be disposed with the root")
	}
}

func TestOwnerContextValues(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	type key struct{}
	root.SetValue(key{}, "from-root")

	if got := child.GetValue(key{}); got != "from-root" {
		t.Errorf("child lookup = %v", got)
	}

	// Nearest provider wins.
	child.SetValue(key{}, "from-child")
	if got := child.GetValue(key{}); got != "from-child" {
		t.Errorf("shadowed lookup = %v", got)
	}
	if got := root.GetValue(key{}); got != "from-root" {
		t.Errorf("root lookup = %v", got)
	}
}

func TestDisposeStopsEffects(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			s.Get()
			runs++
			return nil
		})
	})

	owner.Dispose()
	s.Set(1)
	owner.RunPendingEffects()

	if runs != 1 {
		t.Errorf("disposed effect re-ran, runs = %d", runs)
	}
}
