package suspense

import (
	"sync/atomic"

	"github.com/loomkit/loom/pkg/loom"
	"github.com/loomkit/loom/pkg/vdom"
)

var contextIDCounter uint64

func nextContextID() uint64 {
	return atomic.AddUint64(&contextIDCounter, 1)
}

// RenderFunc renders a piece of the view tree under an explicit
// environment.
type RenderFunc func(*Env) *vdom.VNode

// Env is the render environment threaded explicitly through every
// renderer invocation: the owning reactive scope, the hydration cursor,
// the deferred-fragment registry (server target only) and the nearest
// enclosing suspense boundary. Descending through a Transition yields a
// derived Env with the boundary replaced, so resources below always find
// the boundary that governs them without any ambient lookup.
type Env struct {
	// Owner is the reactive scope owning signals and effects created
	// during this render.
	Owner *loom.Owner

	// Cursor is the hydration identifier allocator for this render pass.
	Cursor *vdom.Cursor

	// Registry receives deferred fragments on the server target.
	// nil on interactive targets.
	Registry *Registry

	boundary *Context
}

// NewEnv creates a render environment with no enclosing boundary.
func NewEnv(owner *loom.Owner, cursor *vdom.Cursor) *Env {
	return &Env{Owner: owner, Cursor: cursor}
}

// WithRegistry returns a copy of the environment carrying the given
// deferred-fragment registry.
func (e *Env) WithRegistry(r *Registry) *Env {
	clone := *e
	clone.Registry = r
	return &clone
}

// Boundary returns the nearest enclosing suspense context, or nil when
// the render position is outside every boundary.
func (e *Env) Boundary() *Context {
	return e.boundary
}

// withBoundary returns a derived environment for a boundary's subtree.
func (e *Env) withBoundary(c *Context) *Env {
	clone := *e
	clone.boundary = c
	return &clone
}
