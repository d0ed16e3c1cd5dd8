package resource

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loomkit/loom/pkg/loom"
	"github.com/loomkit/loom/pkg/suspense"
	"github.com/loomkit/loom/pkg/vdom"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestResourceFetchSuccess(t *testing.T) {
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())

	r := New(env, func() (string, error) {
		return "hello", nil
	})

	waitFor(t, func() bool { return r.State() == Ready })
	if r.Data() != "hello" {
		t.Errorf("Data = %q", r.Data())
	}
	if r.Error() != nil {
		t.Errorf("Error = %v", r.Error())
	}
}

func TestResourceFetchError(t *testing.T) {
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())
	boom := errors.New("boom")

	r := New(env, func() (int, error) {
		return 0, boom
	})

	waitFor(t, func() bool { return r.State() == Error })
	if !errors.Is(r.Error(), boom) {
		t.Errorf("Error = %v", r.Error())
	}
}

func TestResourceBoundaryAccounting(t *testing.T) {
	release := make(chan struct{})

	var r *Resource[string]
	tr := suspense.New(suspense.Config{
		Fallback: func(*suspense.Env) *vdom.VNode { return vdom.Text("loading") },
		Children: func(e *suspense.Env) *vdom.VNode {
			if r == nil {
				r = New(e, func() (string, error) {
					<-release
					return "ok", nil
				})
			}
			return vdom.Text("child")
		},
	})

	tr.Render(suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor()))

	ctx := tr.Context()
	waitFor(t, func() bool { return ctx.PendingCount() == 1 })

	close(release)
	waitFor(t, func() bool { return ctx.Ready() })
	waitFor(t, func() bool { return r.State() == Ready })
}

func TestResourceBoundarySettlesOnError(t *testing.T) {
	var r *Resource[string]
	tr := suspense.New(suspense.Config{
		Fallback: func(*suspense.Env) *vdom.VNode { return vdom.Text("loading") },
		Children: func(e *suspense.Env) *vdom.VNode {
			if r == nil {
				r = New(e, func() (string, error) {
					return "", errors.New("fetch failed")
				})
			}
			return vdom.Text("child")
		},
	})

	tr.Render(suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor()))

	// A failed fetch still settles the boundary.
	waitFor(t, func() bool { return tr.Context().Ready() })
	waitFor(t, func() bool { return r.State() == Error })
}

func TestResourceStaleTime(t *testing.T) {
	var fetches atomic.Int32
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())

	r := New(env, func() (int, error) {
		return int(fetches.Add(1)), nil
	}).StaleTime(time.Hour)

	waitFor(t, func() bool { return r.State() == Ready })

	r.Fetch() // fresh, must not refetch
	time.Sleep(20 * time.Millisecond)
	if got := fetches.Load(); got != 1 {
		t.Errorf("fetches = %d, want 1", got)
	}

	r.Invalidate()
	r.Fetch()
	waitFor(t, func() bool { return fetches.Load() == 2 })
}

func TestResourceRetryOnError(t *testing.T) {
	var attempts atomic.Int32
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())

	r := New(env, func() (string, error) {
		if attempts.Add(1) < 3 {
			return "", errors.New("transient")
		}
		return "recovered", nil
	}).RetryOnError(3, time.Millisecond)

	// Options apply after New already started the first fetch; force a
	// fetch that sees them.
	r.Refetch()

	waitFor(t, func() bool { return r.State() == Ready && r.Data() == "recovered" })
}

func TestResourceSupersededFetchDiscarded(t *testing.T) {
	first := make(chan struct{})
	var calls atomic.Int32
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())

	r := New(env, func() (int, error) {
		n := calls.Add(1)
		if n == 1 {
			<-first
		}
		return int(n), nil
	})

	waitFor(t, func() bool { return calls.Load() == 1 })
	r.Refetch()
	waitFor(t, func() bool { return r.State() == Ready && r.Data() == 2 })

	// Let the stale fetch finish; its result must not clobber the newer one.
	close(first)
	time.Sleep(20 * time.Millisecond)
	if r.Data() != 2 {
		t.Errorf("Data = %d, want 2 (superseded fetch leaked)", r.Data())
	}
}

func TestResourceMutate(t *testing.T) {
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())
	r := New(env, func() (int, error) { return 10, nil })
	waitFor(t, func() bool { return r.State() == Ready })

	r.Mutate(func(v int) int { return v + 1 })
	if r.Data() != 11 {
		t.Errorf("Data = %d, want 11", r.Data())
	}
}

func TestMatchSelectsByState(t *testing.T) {
	release := make(chan struct{})
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())

	r := New(env, func() (string, error) {
		<-release
		return "data", nil
	})

	view := func() *vdom.VNode {
		return Match(r,
			OnLoadingOrPending[string](func() *vdom.VNode { return vdom.Text("spinner") }),
			OnError[string](func(err error) *vdom.VNode { return vdom.Text(err.Error()) }),
			OnReady(func(data string) *vdom.VNode { return vdom.Text(data) }),
		)
	}

	if got := view().Text; got != "spinner" {
		t.Errorf("loading view = %q", got)
	}

	close(release)
	waitFor(t, func() bool { return r.State() == Ready })

	if got := view().Text; got != "data" {
		t.Errorf("ready view = %q", got)
	}
}

func TestMatchNoHandlerReturnsEmptyFragment(t *testing.T) {
	env := suspense.NewEnv(loom.NewOwner(nil), vdom.NewCursor())
	r := New(env, func() (string, error) { return "x", nil })
	waitFor(t, func() bool { return r.State() == Ready })

	node := Match(r, OnError[string](func(error) *vdom.VNode { return vdom.Text("err") }))
	if node.Kind != vdom.KindFragment || len(node.Children) != 0 {
		t.Errorf("unmatched Match = %+v, want empty fragment", node)
	}
}
