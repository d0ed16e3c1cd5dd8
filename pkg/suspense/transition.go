package suspense

import (
	"fmt"
	"sync"

	"github.com/loomkit/loom/pkg/render"
	"github.com/loomkit/loom/pkg/vdom"
)

// Target selects the evaluation strategy for a Transition. It is fixed at
// construction; there are no environment conditionals inside the render
// path.
type Target int

const (
	// TargetInteractive renders live in the client runtime and during
	// hydration: fresh content when ready, otherwise a cached snapshot or
	// the fallback.
	TargetInteractive Target = iota

	// TargetServer renders once per request: inline content when ready,
	// otherwise a placeholder plus a deferred fragment registration.
	TargetServer
)

// boundarySlots is the identifier width one Transition consumes: the
// opening and closing placeholder markers. The hydrating client reserves
// the same width for this component type; the two sides diverge on every
// subsequent identifier if the widths ever differ.
const boundarySlots = 2

// Config describes one Transition instance.
type Config struct {
	// Target selects the evaluator variant. Defaults to TargetInteractive.
	Target Target

	// Fallback renders the placeholder content shown while the boundary
	// is pending. Required.
	Fallback RenderFunc

	// Children renders the real subtree. Required.
	Children RenderFunc

	// SetPending, when non-nil, observes the pending flag: true whenever
	// the boundary shows fallback or stale content instead of fresh
	// content. Interactive target only.
	SetPending func(bool)
}

// Transition is a suspense boundary. It owns one Context, publishes it to
// its subtree via the render environment, and routes every evaluation
// through the state machine of its target variant.
//
// Children are always rendered on the first (ready) evaluation even if a
// resource immediately begins loading: rendering is what registers the
// resource reads against the boundary in the first place.
type Transition struct {
	ctx  *Context
	eval evaluator
}

// New creates a Transition for the given configuration.
func New(cfg Config) *Transition {
	if cfg.Fallback == nil || cfg.Children == nil {
		panic("[LOOM E004] suspense: Transition requires both Fallback and Children")
	}

	ctx := NewContext()
	t := &Transition{ctx: ctx}

	switch cfg.Target {
	case TargetServer:
		t.eval = &serverEvaluator{cfg: cfg, ctx: ctx}
	default:
		t.eval = &interactiveEvaluator{cfg: cfg, ctx: ctx}
	}

	return t
}

// Context returns the boundary's suspense context.
func (t *Transition) Context() *Context {
	return t.ctx
}

// Render evaluates the boundary once. The reactive runtime re-invokes it
// whenever a signal read during the previous evaluation changes.
func (t *Transition) Render(env *Env) *vdom.VNode {
	return t.eval.evaluate(env)
}

// evaluator is one target variant's evaluation strategy.
type evaluator interface {
	evaluate(env *Env) *vdom.VNode
}

// entryPoint captures the cursor position where the boundary first
// appeared, so every re-evaluation replays the identical identifier
// arithmetic.
type entryPoint struct {
	mu       sync.Mutex
	pos      vdom.Position
	captured bool
}

// capture records the cursor position on the first evaluation and moves
// the cursor past the boundary's reserved slots on every evaluation.
func (ep *entryPoint) capture(env *Env) vdom.Position {
	ep.mu.Lock()
	if !ep.captured {
		ep.pos = env.Cursor.Peek()
		ep.captured = true
	}
	pos := ep.pos
	ep.mu.Unlock()

	env.Cursor.ContinueFrom(pos.Advance(boundarySlots))
	return pos
}

// interactiveEvaluator implements the live client state machine:
//
//	ready          -> render children, cache the result, pending=false
//	cached exists  -> return the cached snapshot unchanged, pending=true
//	no cache       -> render fallback, cache it, pending=true
type interactiveEvaluator struct {
	cfg   Config
	ctx   *Context
	entry entryPoint

	mu   sync.Mutex
	prev *vdom.VNode
}

func (ev *interactiveEvaluator) evaluate(env *Env) *vdom.VNode {
	ev.entry.capture(env)
	child := env.withBoundary(ev.ctx)

	if ev.ctx.Ready() {
		current := ev.cfg.Children(child)
		ev.mu.Lock()
		ev.prev = current.Clone()
		ev.mu.Unlock()
		ev.setPending(false)
		return current
	}

	ev.mu.Lock()
	prev := ev.prev
	ev.mu.Unlock()

	if prev != nil {
		ev.setPending(true)
		return prev.Clone()
	}

	ev.setPending(true)
	fallback := ev.cfg.Fallback(child)
	ev.mu.Lock()
	ev.prev = fallback.Clone()
	ev.mu.Unlock()
	return fallback
}

func (ev *interactiveEvaluator) setPending(pending bool) {
	if ev.cfg.SetPending != nil {
		ev.cfg.SetPending(pending)
	}
}

// serverEvaluator implements the one-shot streaming strategy: render the
// subtree to register resource reads, then either emit it inline (nothing
// pending) or register a deferred fragment and emit the fallback between
// placeholder markers.
type serverEvaluator struct {
	cfg   Config
	ctx   *Context
	entry entryPoint
}

func (ev *serverEvaluator) evaluate(env *Env) *vdom.VNode {
	entry := ev.entry.capture(env)
	id := entry.String()
	child := env.withBoundary(ev.ctx)

	// Render first; discarding the result later is fine, the resource
	// registrations are the point.
	content := ev.cfg.Children(child)

	if ev.ctx.PendingCount() == 0 {
		return content
	}

	if env.Registry != nil {
		children := ev.cfg.Children
		boundary := ev.ctx
		owner := env.Owner
		base := env.Registry.NextBase()

		env.Registry.Register(boundary, id, func() string {
			fragEnv := NewEnv(owner, vdom.NewCursorAt(vdom.Position{Base: base})).withBoundary(boundary)
			html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(children(fragEnv))
			if err != nil {
				return ""
			}
			return html
		})
	}

	return placeholder(id, ev.cfg.Fallback(child))
}

// placeholder wraps fallback content in the boundary's two reserved
// marker slots. The markers carry the identifier the streamed fragment
// will later attach to.
func placeholder(id string, fallback *vdom.VNode) *vdom.VNode {
	return vdom.Fragment(
		vdom.Raw(fmt.Sprintf("<!--loom-open:%s-->", id)),
		fallback,
		vdom.Raw(fmt.Sprintf("<!--loom-close:%s-->", id)),
	)
}
