// Package suspense coordinates asynchronous resources with rendering.
//
// A Context counts the resources still loading under one boundary. A
// Transition owns a Context, publishes it to its subtree through the
// explicit render environment (Env), and on every evaluation decides
// whether to show fresh content, a cached snapshot, or the fallback. On
// the server target it instead registers a deferred fragment with the
// Registry and emits the fallback inline; the fragment is rendered to
// HTML once the boundary's resources settle and streamed after the
// initial document.
package suspense
