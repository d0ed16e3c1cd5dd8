package suspense

import (
	"fmt"
	"sync"
)

// Context tracks how many resources are still loading under one suspense
// boundary. Resources call Begin when a load starts and End when it
// settles, success or failure alike; the boundary only cares about
// pending versus resolved, never about the outcome.
type Context struct {
	id uint64

	mu      sync.Mutex
	pending int
	waiters []func()
}

// NewContext creates a zero-count context.
func NewContext() *Context {
	return &Context{id: nextContextID()}
}

// ID returns the unique identifier for this context.
func (c *Context) ID() uint64 {
	return c.id
}

// Begin records the start of one resource load.
func (c *Context) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending++
}

// End records the settlement of one resource load. When the count returns
// to zero, readiness waiters fire, in registration order, outside the
// lock.
//
// A negative count means a resource ended a load it never began. That is
// a defect in the resource system, not a state this component can be in,
// so it is never clamped or masked.
func (c *Context) End() {
	c.mu.Lock()
	c.pending--
	if c.pending < 0 {
		c.mu.Unlock()
		panic(fmt.Sprintf("[LOOM E003] suspense context %d: pending count went negative; End called without matching Begin", c.id))
	}
	var waiters []func()
	if c.pending == 0 {
		waiters = c.waiters
		c.waiters = nil
	}
	c.mu.Unlock()

	for _, fn := range waiters {
		fn()
	}
}

// Ready reports whether every tracked resource has settled.
func (c *Context) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending == 0
}

// PendingCount returns the number of unresolved resources.
func (c *Context) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// OnReady registers fn to run when the pending count next returns to
// zero. If the context is already ready, fn runs immediately on the
// calling goroutine.
func (c *Context) OnReady(fn func()) {
	c.mu.Lock()
	if c.pending == 0 {
		c.mu.Unlock()
		fn()
		return
	}
	c.waiters = append(c.waiters, fn)
	c.mu.Unlock()
}
