package suspense

import "sync"

// Fragment is one deferred piece of server-rendered markup, correlated
// with its placeholder by ID.
type Fragment struct {
	ID   string
	HTML string
}

// Registry is the server-side table of deferred fragments. Transitions
// whose boundary is still pending after the initial render pass register
// a render closure here; each closure is invoked exactly once, when its
// boundary becomes ready, and the resulting fragment is delivered on the
// Fragments channel for the streaming renderer to flush.
type Registry struct {
	mu          sync.Mutex
	outstanding int
	sealed      bool
	abandoned   bool
	nextBase    uint32

	out chan Fragment

	// quit releases waiters blocked on a full out channel once the
	// consumer is gone.
	quit chan struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		// Buffered so a fragment resolving before the consumer starts
		// draining does not block the settling goroutine.
		out:  make(chan Fragment, 64),
		quit: make(chan struct{}),
	}
}

// NextBase allocates an identifier-stream base for one deferred fragment.
// Bases are handed out in registration order, which is document order, so
// a hydrating client walking the same tree allocates the same bases.
func (r *Registry) NextBase() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextBase++
	return r.nextBase
}

// Register records a deferred fragment for the given boundary. renderFn
// runs exactly once, after ctx becomes ready, on the goroutine that
// settles the boundary's last resource. On an abandoned registry the
// fragment is dropped instead; the settling goroutine never blocks.
func (r *Registry) Register(ctx *Context, id string, renderFn func() string) {
	r.mu.Lock()
	r.outstanding++
	r.mu.Unlock()

	ctx.OnReady(func() {
		select {
		case <-r.quit:
			r.settle()
			return
		default:
		}

		select {
		case r.out <- Fragment{ID: id, HTML: renderFn()}:
		case <-r.quit:
		}
		r.settle()
	})
}

// Seal marks the end of the initial render pass: no further registrations
// will arrive. Once every outstanding fragment has been delivered, the
// Fragments channel closes.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	done := r.outstanding == 0
	r.mu.Unlock()

	if done {
		close(r.out)
	}
}

// Abandon marks the consumer gone: the stream timed out or the client
// disconnected before every boundary settled. Waiters still pending drop
// their fragment instead of sending, and any waiter already blocked on
// the full channel is released. Safe to call more than once, and after a
// normal drain.
func (r *Registry) Abandon() {
	r.mu.Lock()
	if r.abandoned {
		r.mu.Unlock()
		return
	}
	r.abandoned = true
	r.mu.Unlock()

	close(r.quit)
}

func (r *Registry) settle() {
	r.mu.Lock()
	r.outstanding--
	done := r.sealed && r.outstanding == 0 && !r.abandoned
	r.mu.Unlock()

	if done {
		close(r.out)
	}
}

// Outstanding returns the number of registered fragments not yet
// delivered.
func (r *Registry) Outstanding() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outstanding
}

// Fragments is the stream of resolved fragments. It closes after Seal
// once everything registered has been delivered.
func (r *Registry) Fragments() <-chan Fragment {
	return r.out
}
