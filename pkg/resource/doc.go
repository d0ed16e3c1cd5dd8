// Package resource provides asynchronous data loading for loom views.
//
// A Resource fetches data in the background, exposes its lifecycle through
// reactive signals, and reports in-flight work to the suspense boundary of
// the environment it was created in.
package resource
