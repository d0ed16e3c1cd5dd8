package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loomkit/loom/pkg/suspense"
)

// Server is the loom HTTP/WebSocket server. Create with New, register
// views with Handle, then call Run.
type Server struct {
	cfg    *Config
	router chi.Router
	logger *slog.Logger
	hub    *Hub

	httpSrv *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a Server with the given configuration.
// A nil config uses DefaultConfig.
func New(cfg *Config, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		cfg:    cfg.Clone(),
		router: chi.NewRouter(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hub = newHub(s.cfg, s.logger)

	s.router.Use(chimw.RealIP)
	s.router.Use(chimw.Recoverer)

	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
	s.router.Get("/loom/live", s.serveLive)

	return s
}

// Use appends HTTP middleware. Must be called before Handle.
func (s *Server) Use(mw ...func(http.Handler) http.Handler) {
	s.router.Use(mw...)
}

// Handle registers a view at the given route pattern.
func (s *Server) Handle(pattern string, view suspense.RenderFunc, opts ...PageOption) {
	s.router.Get(pattern, s.renderHandler(pattern, view, opts...))
}

// Router exposes the underlying chi router for custom routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// Hub returns the live session hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:    s.cfg.Address,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Address)
		if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.hub.closeAll()
	return s.httpSrv.Shutdown(shutdownCtx)
}
