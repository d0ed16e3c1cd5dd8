package loom

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect. It runs once on creation and re-runs
// whenever a signal or memo it read during the last run changes. The
// effect function may return a Cleanup that runs before the next run and
// on disposal.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*signalBase
	sourcesMu sync.Mutex

	owner *Owner

	pending  atomic.Bool
	disposed atomic.Bool
}

// CreateEffect registers an effect owned by the current owner and runs it
// immediately. Re-runs are scheduled on the owning scope and executed by
// Owner.RunPendingEffects after the render phase.
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: getCurrentOwner(),
	}

	if e.owner != nil {
		e.owner.registerEffect(e)
	}

	e.run()
	return e
}

// MarkDirty schedules the effect for re-run. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	if e.pending.CompareAndSwap(false, true) {
		if e.owner != nil {
			e.owner.scheduleEffect(e)
		} else {
			// No owning scope to defer to; run inline.
			e.run()
		}
	}
}

// ID implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	e.sources = append(e.sources, source)
}

// run executes the effect function, re-tracking dependencies.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	WithListener(e, func() {
		e.cleanup = e.fn()
	})
}

// dispose unsubscribes the effect and runs its final cleanup.
func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
}
