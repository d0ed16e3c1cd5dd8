// Package server provides the HTTP server for loom applications.
//
// The server renders registered views to streamed HTML: each request gets
// its own reactive owner, identifier cursor, and deferred fragment
// registry. The initial document is flushed with fallback placeholders for
// any boundary still loading, the connection stays open, and fragments are
// appended out of order as their boundaries resolve.
//
// A WebSocket endpoint carries live updates to hydrated clients: sessions
// register with a hub and receive fragment frames pushed by application
// code.
//
// # Request Lifecycle
//
//  1. A fresh Owner, Cursor, and Registry are created for the request
//  2. The view renders once; pending boundaries register deferred work
//  3. The registry is sealed and the document is flushed with placeholders
//  4. Fragments stream as boundaries settle, then the document closes
//
// Routing is chi; install middleware with Use before registering routes.
package server
