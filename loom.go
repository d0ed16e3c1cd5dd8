// Package loom is the public API for the loom streaming renderer.
//
// This is the recommended import for applications:
//
//	import "github.com/loomkit/loom"
//
// Usage:
//
//	count := loom.NewSignal(0)
//	list := loom.NewTransition(loom.TransitionConfig{
//	    Fallback: func(*loom.Env) *loom.VNode { return vdom.Text("loading") },
//	    Children: CategoryList,
//	})
//	srv := loom.NewServer(nil)
//	srv.Handle("/", HomePage)
package loom

import (
	core "github.com/loomkit/loom/pkg/loom"
	"github.com/loomkit/loom/pkg/server"
	"github.com/loomkit/loom/pkg/suspense"
	"github.com/loomkit/loom/pkg/vdom"
)

// =============================================================================
// Virtual DOM
// =============================================================================

// VNode is a node in the virtual document tree.
type VNode = vdom.VNode

// Position is a hydration identifier: a fragment base plus a sequential
// offset within that fragment.
type Position = vdom.Position

// Cursor deals out hydration identifiers during a render pass.
type Cursor = vdom.Cursor

// NewCursor creates a cursor starting at the root fragment.
var NewCursor = vdom.NewCursor

// =============================================================================
// Reactive primitives (re-export from pkg/loom)
// =============================================================================

// Cleanup is a function run before an effect re-executes or disposes.
type Cleanup = core.Cleanup

// Owner anchors reactive state to a lifecycle scope.
type Owner = core.Owner

// NewOwner creates a reactive ownership scope under parent (nil for a
// root scope).
var NewOwner = core.NewOwner

// NewSignal creates a reactive value holder.
//
//	count := loom.NewSignal(0)
//	count.Set(1)
//	value := count.Get() // 1
func NewSignal[T any](initial T) *core.Signal[T] {
	return core.NewSignal(initial)
}

// NewMemo creates a computed value that tracks its dependencies.
//
//	doubled := loom.NewMemo(func() int { return count.Get() * 2 })
func NewMemo[T any](compute func() T) *core.Memo[T] {
	return core.NewMemo(compute)
}

// CreateEffect runs fn immediately and again whenever a signal it read
// changes. The optional returned Cleanup runs before each re-run.
var CreateEffect = core.CreateEffect

// Batch coalesces signal writes inside fn into one notification wave.
var Batch = core.Batch

// Untracked runs fn without subscribing the current listener.
var Untracked = core.Untracked

// =============================================================================
// Suspense
// =============================================================================

// Env is the explicit render environment threaded through a view tree.
type Env = suspense.Env

// NewEnv creates a root render environment.
var NewEnv = suspense.NewEnv

// RenderFunc is a view: environment in, virtual tree out.
type RenderFunc = suspense.RenderFunc

// SuspenseContext tracks pending work for one boundary.
type SuspenseContext = suspense.Context

// Transition is a suspense boundary around a loading subtree.
type Transition = suspense.Transition

// TransitionConfig configures a Transition.
type TransitionConfig = suspense.Config

// Target selects a Transition's evaluation strategy.
type Target = suspense.Target

// Transition evaluation targets.
const (
	TargetInteractive = suspense.TargetInteractive
	TargetServer      = suspense.TargetServer
)

// NewTransition creates a suspense boundary.
func NewTransition(cfg TransitionConfig) *Transition {
	return suspense.New(cfg)
}

// FragmentRegistry collects deferred fragments during a server render.
type FragmentRegistry = suspense.Registry

// NewFragmentRegistry creates an empty registry for one render pass.
var NewFragmentRegistry = suspense.NewRegistry

// =============================================================================
// Server
// =============================================================================

// Server renders registered views to streamed HTML.
type Server = server.Server

// ServerConfig configures the HTTP/WebSocket server.
type ServerConfig = server.Config

// DefaultServerConfig returns a ServerConfig with sensible defaults.
var DefaultServerConfig = server.DefaultConfig

// NewServer creates a Server. A nil config uses defaults.
var NewServer = server.New
