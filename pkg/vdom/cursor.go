package vdom

import (
	"fmt"
	"sync"
)

// Position is a point in the hydration identifier stream.
// It is a base plus an offset: the base distinguishes identifier streams
// (the initial document is base 0, each deferred fragment renders under its
// own base) and the offset counts slots consumed within that stream.
type Position struct {
	Base   uint32
	Offset uint32
}

// String returns the wire form of the position, used as the stable
// identifier correlating a placeholder with its deferred fragment.
func (p Position) String() string {
	return fmt.Sprintf("f%d-%d", p.Base, p.Offset)
}

// Advance returns the position moved forward by n slots.
func (p Position) Advance(n uint32) Position {
	p.Offset += n
	return p
}

// Cursor allocates hydration identifiers for view positions.
//
// The server render pass and the client hydration pass must walk the same
// component tree and perform the same sequence of Peek/Reserve/ContinueFrom
// calls; the identifiers then come out token-for-token identical, which is
// what lets streamed fragments attach to the right DOM nodes. Components
// never do offset arithmetic themselves - they declare the slots they
// consume via Reserve.
type Cursor struct {
	mu  sync.Mutex
	pos Position
}

// NewCursor creates a cursor at the start of the base-0 identifier stream.
func NewCursor() *Cursor {
	return &Cursor{}
}

// NewCursorAt creates a cursor positioned at p.
// Deferred fragments render under a cursor based at their placeholder slot
// so fragment-internal identifiers cannot collide with the outer stream.
func NewCursorAt(p Position) *Cursor {
	return &Cursor{pos: p}
}

// Peek returns the current position without consuming it.
func (c *Cursor) Peek() Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// ContinueFrom resets the cursor to the given position. Subsequent nested
// components continue numbering from there.
func (c *Cursor) ContinueFrom(p Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = p
}

// Next consumes one slot and returns the position it occupied.
func (c *Cursor) Next() Position {
	return c.Reserve(1)
}

// Reserve consumes n consecutive slots and returns the position of the
// first. The reserved width is declared once by the component type that
// owns the slots; every render target must reserve the same width or the
// server and hydration identifier streams diverge.
func (c *Cursor) Reserve(n uint32) Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pos
	c.pos.Offset += n
	return p
}

// Reset rewinds the cursor to the start of its current base.
func (c *Cursor) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos.Offset = 0
}
