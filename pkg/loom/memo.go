package loom

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached computation that tracks its own dependencies.
// It is lazy: the value recomputes on the first Get after invalidation,
// not when a dependency changes. Memos can themselves be subscribed to,
// so derived values chain.
type Memo[T any] struct {
	base signalBase

	compute func() T

	value   T
	valueMu sync.RWMutex

	// valid reports whether the cached value is current.
	valid atomic.Bool

	sources   []*signalBase
	sourcesMu sync.Mutex

	// computing guards against recursive self-reads.
	computing atomic.Bool
}

// NewMemo creates a memo. The computation runs lazily on first Get.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if invalid, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	if listener := getCurrentListener(); listener != nil {
		m.base.subscribe(listener)
		if tracker, ok := listener.(sourceTracker); ok {
			tracker.addSource(&m.base)
		}
	}

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// Peek returns the cached value without subscribing or recomputing.
func (m *Memo[T]) Peek() T {
	m.valueMu.RLock()
	defer m.valueMu.RUnlock()
	return m.value
}

// MarkDirty invalidates the cached value and propagates to subscribers.
// Implements Listener.
func (m *Memo[T]) MarkDirty() {
	if m.valid.Swap(false) {
		m.base.notifySubscribers()
	}
}

// ID implements Listener.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()
	m.sources = append(m.sources, source)
}

func (m *Memo[T]) recompute() {
	if !m.computing.CompareAndSwap(false, true) {
		// Recursive read during computation; return stale value.
		return
	}
	defer m.computing.Store(false)

	// Drop stale subscriptions before tracking fresh ones.
	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	var value T
	WithListener(m, func() {
		value = m.compute()
	})

	m.valueMu.Lock()
	m.value = value
	m.valueMu.Unlock()
	m.valid.Store(true)
}
