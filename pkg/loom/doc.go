// Package loom is the reactive core: signals, memos, effects and owner
// scopes. Reading a signal inside a tracked computation subscribes that
// computation; writing the signal marks its subscribers dirty. Owners form
// a tree mirroring the component tree and dispose everything they own.
package loom
