package render

import (
	"fmt"
	"io"

	"github.com/loomkit/loom/pkg/vdom"
)

// PageData contains everything needed to render a complete HTML document.
type PageData struct {
	// Body is the root VNode for the page content.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Meta contains meta tags for the document head.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// ClientScript is the path to the hydration client JavaScript.
	// Empty disables script injection (e.g. static export).
	ClientScript string

	// Lang is the language attribute for the html element. Defaults to "en".
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Content   string
	Property  string
	HTTPEquiv string
	Charset   string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	if _, err := w.Write([]byte("<!DOCTYPE html>\n")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, `<html lang="%s">`+"\n", escapeAttr(lang)); err != nil {
		return err
	}

	if err := r.renderHead(w, page); err != nil {
		return err
	}

	if _, err := w.Write([]byte("<body>\n")); err != nil {
		return err
	}

	if err := r.RenderToWriter(w, page.Body); err != nil {
		return err
	}

	if err := r.renderClientScript(w, page); err != nil {
		return err
	}

	_, err := w.Write([]byte("</body>\n</html>\n"))
	return err
}

// renderHead renders the document head: charset, viewport, title, meta
// tags and stylesheets.
func (r *Renderer) renderHead(w io.Writer, page PageData) error {
	if _, err := w.Write([]byte("<head>\n<meta charset=\"utf-8\">\n")); err != nil {
		return err
	}
	if _, err := w.Write([]byte(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")); err != nil {
		return err
	}

	if page.Title != "" {
		if _, err := fmt.Fprintf(w, "<title>%s</title>\n", escapeHTML(page.Title)); err != nil {
			return err
		}
	}

	for _, m := range page.Meta {
		if err := renderMetaTag(w, m); err != nil {
			return err
		}
	}

	for _, href := range page.StyleSheets {
		if _, err := fmt.Fprintf(w, `<link rel="stylesheet" href="%s">`+"\n", escapeAttr(href)); err != nil {
			return err
		}
	}

	_, err := w.Write([]byte("</head>\n"))
	return err
}

func renderMetaTag(w io.Writer, m MetaTag) error {
	if _, err := w.Write([]byte("<meta")); err != nil {
		return err
	}
	pairs := []struct{ k, v string }{
		{"charset", m.Charset},
		{"name", m.Name},
		{"property", m.Property},
		{"http-equiv", m.HTTPEquiv},
		{"content", m.Content},
	}
	for _, p := range pairs {
		if p.v == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, p.k, escapeAttr(p.v)); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte(">\n"))
	return err
}

// renderClientScript injects the hydration client.
func (r *Renderer) renderClientScript(w io.Writer, page PageData) error {
	if page.ClientScript == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, `<script src="%s" defer></script>`+"\n", escapeAttr(page.ClientScript))
	return err
}
