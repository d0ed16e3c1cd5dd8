package loom

import "testing"

func TestSignalGetSet(t *testing.T) {
	s := NewSignal(1)
	if s.Get() != 1 {
		t.Fatalf("initial = %d", s.Get())
	}
	s.Set(2)
	if s.Get() != 2 {
		t.Errorf("after Set = %d", s.Get())
	}
}

func TestSignalUpdate(t *testing.T) {
	s := NewSignal(10)
	s.Update(func(v int) int { return v + 5 })
	if s.Get() != 15 {
		t.Errorf("after Update = %d", s.Get())
	}
}

func TestSignalSetSameValueDoesNotNotify(t *testing.T) {
	s := NewSignal("a")
	runs := 0

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			s.Get()
			runs++
			return nil
		})
	})

	s.Set("a")
	owner.RunPendingEffects()

	if runs != 1 {
		t.Errorf("effect ran %d times, want 1 (unchanged value)", runs)
	}
}

func TestSignalPeekDoesNotSubscribe(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			s.Peek()
			runs++
			return nil
		})
	})

	s.Set(99)
	owner.RunPendingEffects()

	if runs != 1 {
		t.Errorf("effect ran %d times, want 1 (Peek must not track)", runs)
	}
}

func TestSignalWithEquals(t *testing.T) {
	type point struct{ X, Y int }
	s := NewSignal(point{1, 2}).WithEquals(func(a, b point) bool {
		return a.X == b.X // only X matters
	})

	notified := 0
	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			s.Get()
			notified++
			return nil
		})
	})

	s.Set(point{1, 99})
	owner.RunPendingEffects()
	if notified != 1 {
		t.Errorf("same-X write notified, runs = %d", notified)
	}

	s.Set(point{2, 99})
	owner.RunPendingEffects()
	if notified != 2 {
		t.Errorf("changed-X write did not notify, runs = %d", notified)
	}
}

func TestUntracked(t *testing.T) {
	s := NewSignal(0)
	runs := 0

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			Untracked(func() { s.Get() })
			runs++
			return nil
		})
	})

	s.Set(1)
	owner.RunPendingEffects()

	if runs != 1 {
		t.Errorf("untracked read created a subscription, runs = %d", runs)
	}
}
