package resource

import "github.com/loomkit/loom/pkg/vdom"

// Handler renders one resource state. Use the On* constructors with Match.
type Handler[T any] interface {
	handle(r *Resource[T]) (*vdom.VNode, bool)
}

type pendingHandler[T any] struct {
	fn func() *vdom.VNode
}

func (h pendingHandler[T]) handle(r *Resource[T]) (*vdom.VNode, bool) {
	if r.State() == Pending {
		return h.fn(), true
	}
	return nil, false
}

type loadingHandler[T any] struct {
	fn func() *vdom.VNode
}

func (h loadingHandler[T]) handle(r *Resource[T]) (*vdom.VNode, bool) {
	if r.State() == Loading {
		return h.fn(), true
	}
	return nil, false
}

type loadingOrPendingHandler[T any] struct {
	fn func() *vdom.VNode
}

func (h loadingOrPendingHandler[T]) handle(r *Resource[T]) (*vdom.VNode, bool) {
	if s := r.State(); s == Loading || s == Pending {
		return h.fn(), true
	}
	return nil, false
}

type errorHandler[T any] struct {
	fn func(err error) *vdom.VNode
}

func (h errorHandler[T]) handle(r *Resource[T]) (*vdom.VNode, bool) {
	if r.State() == Error {
		return h.fn(r.Error()), true
	}
	return nil, false
}

type readyHandler[T any] struct {
	fn func(data T) *vdom.VNode
}

func (h readyHandler[T]) handle(r *Resource[T]) (*vdom.VNode, bool) {
	if r.State() == Ready {
		return h.fn(r.Data()), true
	}
	return nil, false
}

// OnPending matches the state before the first fetch starts.
func OnPending[T any](fn func() *vdom.VNode) Handler[T] {
	return pendingHandler[T]{fn: fn}
}

// OnLoading matches an in-flight fetch.
func OnLoading[T any](fn func() *vdom.VNode) Handler[T] {
	return loadingHandler[T]{fn: fn}
}

// OnLoadingOrPending matches both pre-fetch and in-flight states.
func OnLoadingOrPending[T any](fn func() *vdom.VNode) Handler[T] {
	return loadingOrPendingHandler[T]{fn: fn}
}

// OnError matches a failed fetch and receives the error.
func OnError[T any](fn func(err error) *vdom.VNode) Handler[T] {
	return errorHandler[T]{fn: fn}
}

// OnReady matches loaded data and receives the value.
func OnReady[T any](fn func(data T) *vdom.VNode) Handler[T] {
	return readyHandler[T]{fn: fn}
}

// Match renders the first handler matching the resource's current state.
// State is read through the signal, so views using Match re-render on
// transitions. Returns an empty fragment when nothing matches.
func Match[T any](r *Resource[T], handlers ...Handler[T]) *vdom.VNode {
	for _, h := range handlers {
		if node, ok := h.handle(r); ok {
			return node
		}
	}
	return vdom.Fragment()
}
