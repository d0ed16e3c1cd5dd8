// Package vdom defines the virtual view tree used by the rendering core.
//
// A VNode is a plain value describing an element, text, fragment, raw HTML
// or nested component. Trees are built with the element constructors
// (Div, Span, ...) and the Text/Fragment helpers, rendered to HTML by
// package render, and cached as immutable snapshots by suspense boundaries.
//
// The package also owns the hydration Cursor: the deterministic identifier
// allocator that keeps server-rendered markup and the hydrating client in
// lockstep. See cursor.go.
package vdom
