// Package middleware provides HTTP middleware and instrumentation for loom
// servers.
//
// Two concerns live here:
//
//   - Prometheus: request metrics plus counters and histograms for the
//     streaming pipeline (deferred fragments, boundary resolution latency,
//     live sessions).
//   - OpenTelemetry: one span per server render, with fragment flushes
//     recorded as span events.
//
// Both are standard net/http middleware, compatible with chi's Use.
package middleware
