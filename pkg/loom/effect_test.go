package loom

import "testing"

func TestEffectRunsImmediately(t *testing.T) {
	ran := false
	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			ran = true
			return nil
		})
	})
	if !ran {
		t.Error("effect should run on creation")
	}
}

func TestEffectRerunsOnDependencyChange(t *testing.T) {
	s := NewSignal(0)
	var seen []int

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			seen = append(seen, s.Get())
			return nil
		})
	})

	s.Set(1)
	owner.RunPendingEffects()
	s.Set(2)
	owner.RunPendingEffects()

	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Errorf("seen = %v, want [0 1 2]", seen)
	}
}

func TestEffectCleanupRunsBeforeRerun(t *testing.T) {
	s := NewSignal(0)
	var events []string

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			s.Get()
			events = append(events, "run")
			return func() { events = append(events, "cleanup") }
		})
	})

	s.Set(1)
	owner.RunPendingEffects()

	want := []string{"run", "cleanup", "run"}
	if len(events) != len(want) {
		t.Fatalf("events = %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events = %v, want %v", events, want)
			break
		}
	}
}

func TestBatchDeduplicatesNotifications(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)
	runs := 0

	owner := NewOwner(nil)
	WithOwner(owner, func() {
		CreateEffect(func() Cleanup {
			a.Get()
			b.Get()
			runs++
			return nil
		})
	})

	Batch(func() {
		a.Set(1)
		b.Set(1)
		a.Set(2)
	})
	owner.RunPendingEffects()

	if runs != 2 {
		t.Errorf("runs = %d, want 2 (one initial, one batched)", runs)
	}
}
