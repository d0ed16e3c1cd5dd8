package loom

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for one goroutine. Per-goroutine
// state lets concurrent renders (one per session) track dependencies
// independently.
type trackingContext struct {
	// currentOwner owns newly created signals and effects.
	currentOwner *Owner

	// currentListener is subscribed by any signal read. nil means reads
	// are untracked.
	currentListener Listener

	// batchDepth counts nested Batch calls. When > 0, notifications queue.
	batchDepth int

	// pendingUpdates accumulates listeners to notify when a batch ends.
	pendingUpdates []Listener
}

var trackingContexts sync.Map

// goroutineID parses the goroutine id out of the runtime stack header.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> ".
	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := goroutineID()
	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*trackingContext)
	}
	ctx := &trackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

func getBatchDepth() int {
	return getTrackingContext().batchDepth
}

func queuePendingUpdate(l Listener) {
	ctx := getTrackingContext()
	ctx.pendingUpdates = append(ctx.pendingUpdates, l)
}

func drainPendingUpdates() []Listener {
	ctx := getTrackingContext()
	updates := ctx.pendingUpdates
	ctx.pendingUpdates = nil
	return updates
}

// WithOwner runs fn with the given owner as the current owner.
// Signals and effects created inside fn belong to it.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs fn with the given listener receiving dependency
// subscriptions. Used by the render loop to make a component's render
// function re-run when any signal it read changes.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}

// Untracked runs fn with dependency tracking disabled.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}
