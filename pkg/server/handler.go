package server

import (
	"net/http"
	"time"

	"github.com/loomkit/loom/pkg/loom"
	"github.com/loomkit/loom/pkg/middleware"
	"github.com/loomkit/loom/pkg/render"
	"github.com/loomkit/loom/pkg/suspense"
	"github.com/loomkit/loom/pkg/vdom"
)

// PageOption customizes the document wrapper for one route.
type PageOption func(*render.PageData)

// WithTitle sets the page title.
func WithTitle(title string) PageOption {
	return func(p *render.PageData) {
		p.Title = title
	}
}

// WithMeta appends meta tags to the document head.
func WithMeta(tags ...render.MetaTag) PageOption {
	return func(p *render.PageData) {
		p.Meta = append(p.Meta, tags...)
	}
}

// WithStyleSheets appends stylesheet links to the document head.
func WithStyleSheets(hrefs ...string) PageOption {
	return func(p *render.PageData) {
		p.StyleSheets = append(p.StyleSheets, hrefs...)
	}
}

// WithClientScript overrides the hydration client path for this route.
func WithClientScript(path string) PageOption {
	return func(p *render.PageData) {
		p.ClientScript = path
	}
}

// renderHandler builds the streaming SSR handler for one view.
//
// Per request: a fresh owner, cursor, and registry are created, the view
// renders once, the registry is sealed, and the document streams. Deferred
// fragments flush as their boundaries settle, bounded by StreamTimeout.
func (s *Server) renderHandler(pattern string, view suspense.RenderFunc, opts ...PageOption) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := loom.NewOwner(nil)
		defer owner.Dispose()

		reg := suspense.NewRegistry()
		env := suspense.NewEnv(owner, vdom.NewCursor()).WithRegistry(reg)

		body := view(env)
		reg.Seal()

		// Covers every exit: on a timed-out or disconnected stream the
		// undrained registry must release settling goroutines instead of
		// letting them block on the fragment channel. A no-op after a
		// normal drain.
		defer reg.Abandon()

		deferred := reg.Outstanding()
		for i := 0; i < deferred; i++ {
			middleware.RecordFragmentDeferred()
		}

		page := render.PageData{
			Body:         body,
			Title:        s.cfg.Title,
			StyleSheets:  s.cfg.StyleSheets,
			ClientScript: s.cfg.ClientScript,
			Lang:         s.cfg.Lang,
		}
		for _, opt := range opts {
			opt(&page)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		sr := render.NewStreamingRenderer(w, render.RendererConfig{})
		if err := sr.BeginPage(page); err != nil {
			s.logger.Error("render failed", "path", pattern, "err", err)
			return
		}

		if deferred > 0 {
			s.logger.Debug("streaming deferred fragments",
				"path", pattern, "outstanding", deferred)
		}

		flushStart := time.Now()
		deadline := time.NewTimer(s.cfg.StreamTimeout)
		defer deadline.Stop()

		for {
			select {
			case frag, ok := <-reg.Fragments():
				if !ok {
					if err := sr.EndPage(); err != nil {
						s.logger.Error("close failed", "path", pattern, "err", err)
					}
					return
				}
				if err := sr.WriteFragment(frag.ID, frag.HTML); err != nil {
					s.logger.Error("fragment write failed",
						"path", pattern, "fragment", frag.ID, "err", err)
					return
				}
				middleware.RecordFragmentStreamed(time.Since(flushStart))
				middleware.FragmentFlushed(r.Context(), frag.ID)

			case <-r.Context().Done():
				// Client went away; nothing left to write.
				return

			case <-deadline.C:
				middleware.RecordStreamTimeout()
				s.logger.Warn("stream deadline exceeded",
					"path", pattern, "outstanding", reg.Outstanding())
				_ = sr.EndPage()
				return
			}
		}
	}
}
