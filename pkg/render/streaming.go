package render

import (
	"fmt"
	"io"
	"net/http"
)

// StreamingRenderer wraps Renderer with chunked output support.
// It flushes incrementally for faster time-to-first-byte and implements
// the out-of-order half of the suspense protocol: the document is sent
// with fallback placeholders, kept open, and deferred fragments are
// appended as they resolve.
type StreamingRenderer struct {
	*Renderer
	flusher http.Flusher
	w       io.Writer
}

// NewStreamingRenderer creates a streaming renderer writing to w.
// If w implements http.Flusher, content is flushed after each section.
func NewStreamingRenderer(w io.Writer, config RendererConfig) *StreamingRenderer {
	flusher, _ := w.(http.Flusher)
	return &StreamingRenderer{
		Renderer: NewRenderer(config),
		flusher:  flusher,
		w:        w,
	}
}

// BeginPage writes the document through the initial body content and the
// client script, leaving body and html open so fragments can follow.
// The head is flushed early for faster first paint.
func (s *StreamingRenderer) BeginPage(page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := s.w.Write([]byte("<!DOCTYPE html>\n")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := s.renderHead(s.w, page); err != nil {
		return err
	}
	s.flush()

	if _, err := s.w.Write([]byte("<body>\n")); err != nil {
		return err
	}

	if err := s.RenderToWriter(s.w, page.Body); err != nil {
		return err
	}

	if err := s.renderClientScript(s.w, page); err != nil {
		return err
	}

	s.flush()
	return nil
}

// WriteFragment appends one deferred fragment chunk. The template element
// carries the fragment markup; the inline script tells the client to swap
// it into the placeholder with the matching identifier.
func (s *StreamingRenderer) WriteFragment(id, html string) error {
	if _, err := fmt.Fprintf(s.w,
		`<template data-loom-fragment="%s">%s</template>`+"\n",
		escapeAttr(id), html); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w,
		`<script>window.$loom&&$loom.attach("%s")</script>`+"\n",
		escapeAttr(id)); err != nil {
		return err
	}
	s.flush()
	return nil
}

// EndPage closes the document.
func (s *StreamingRenderer) EndPage() error {
	if _, err := s.w.Write([]byte("</body>\n</html>\n")); err != nil {
		return err
	}
	s.flush()
	return nil
}

// RenderPage renders a complete document with incremental flushing and no
// deferred fragments. Equivalent to BeginPage followed by EndPage.
func (s *StreamingRenderer) RenderPage(page PageData) error {
	if err := s.BeginPage(page); err != nil {
		return err
	}
	return s.EndPage()
}

func (s *StreamingRenderer) flush() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// FlushableWriter wraps an io.Writer with flush counting.
// Useful for testing streaming behavior without an http.ResponseWriter.
type FlushableWriter struct {
	io.Writer
	FlushCount int
}

// Flush implements http.Flusher.
func (w *FlushableWriter) Flush() {
	w.FlushCount++
}
