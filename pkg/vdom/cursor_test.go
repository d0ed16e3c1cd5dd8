package vdom

import "testing"

func TestCursorReserve(t *testing.T) {
	c := NewCursor()

	p1 := c.Reserve(2)
	p2 := c.Next()

	if p1 != (Position{Base: 0, Offset: 0}) {
		t.Errorf("first reservation = %v", p1)
	}
	if p2 != (Position{Base: 0, Offset: 2}) {
		t.Errorf("slot after reservation = %v, want offset 2", p2)
	}
	if got := c.Peek(); got != (Position{Base: 0, Offset: 3}) {
		t.Errorf("peek = %v, want offset 3", got)
	}
}

func TestCursorPeekDoesNotConsume(t *testing.T) {
	c := NewCursor()
	c.Reserve(5)

	if c.Peek() != c.Peek() {
		t.Error("Peek must not advance the cursor")
	}
}

func TestCursorContinueFrom(t *testing.T) {
	c := NewCursor()
	entry := c.Peek()
	c.ContinueFrom(entry.Advance(2))

	if got := c.Peek(); got != (Position{Base: 0, Offset: 2}) {
		t.Errorf("peek = %v, want offset 2", got)
	}
}

// Replaying the same walk on two cursors must produce identical identifier
// sequences; this is the contract that lets a hydrating client attach
// server-streamed fragments to the right nodes.
func TestCursorReplayDeterminism(t *testing.T) {
	walk := func(c *Cursor) []string {
		var ids []string
		entry := c.Peek()
		ids = append(ids, entry.String())
		c.ContinueFrom(entry.Advance(2))
		ids = append(ids, c.Next().String())
		ids = append(ids, c.Reserve(3).String())
		ids = append(ids, c.Next().String())
		return ids
	}

	server := walk(NewCursor())
	client := walk(NewCursor())

	if len(server) != len(client) {
		t.Fatalf("sequence lengths differ: %d vs %d", len(server), len(client))
	}
	for i := range server {
		if server[i] != client[i] {
			t.Errorf("id %d: server %q, client %q", i, server[i], client[i])
		}
	}
}

func TestCursorFragmentBase(t *testing.T) {
	outer := NewCursor()
	outer.Reserve(4)

	// A deferred fragment renders under its own base.
	frag := NewCursorAt(Position{Base: 7})
	id := frag.Next().String()

	if id != "f7-0" {
		t.Errorf("fragment id = %q, want f7-0", id)
	}
	if outer.Peek().Base != 0 {
		t.Error("outer cursor base must be unaffected")
	}
}
