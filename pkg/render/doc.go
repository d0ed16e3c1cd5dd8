// Package render turns vdom trees into HTML.
//
// Renderer produces escaped, deterministic markup (attributes are sorted).
// StreamingRenderer additionally supports the suspense streaming protocol:
// it writes the initial document with fallback placeholders, flushes, and
// then appends deferred fragments as <template> chunks plus a small attach
// script as their resources resolve.
package render
