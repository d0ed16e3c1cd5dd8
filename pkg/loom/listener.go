package loom

// Listener is anything that can be notified when a dependency changes.
// Implemented by effects, memos and the render loop's dynamic children.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier, used for deduplication.
	ID() uint64
}

// Cleanup is returned by effects to release resources. It runs before the
// effect re-runs and when the effect is disposed.
type Cleanup func()
