// Package server wires the health endpoint and the upstream proxy routes into one
// HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/rshade/pipewatch/internal/config"
	"github.com/rshade/pipewatch/internal/health"
	"github.com/rshade/pipewatch/internal/proxy"
)

// Server serves /api/health and the configured proxy routes.
type Server struct {
	cfg     config.ServerConfig
	handler http.Handler
	logger  zerolog.Logger
}

// New builds the router from cfg. It fails when the upstream configuration is unusable.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	if err := cfg.Upstream.Validate(); err != nil {
		return nil, fmt.Errorf("upstream config: %w", err)
	}

	gateway, err := proxy.New(proxy.Config{
		Origin:    cfg.Upstream.Origin,
		VerifyTLS: cfg.Upstream.VerifyTLS,
		Timeout:   cfg.Upstream.Timeout,
	}, proxy.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating proxy: %w", err)
	}

	routes := make([]proxy.Route, 0, len(cfg.Upstream.Routes))
	for _, rc := range cfg.Upstream.Routes {
		routes = append(routes, proxy.Route{Path: rc.Path, UpstreamPath: rc.UpstreamPath})
	}

	return &Server{
		cfg:     cfg.Server,
		handler: NewRouter(gateway, routes, logger),
		logger:  logger,
	}, nil
}

// NewRouter mounts the health endpoint and one GET handler per route.
func NewRouter(gateway *proxy.Gateway, routes []proxy.Route, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(accessLog)
	r.Use(chimw.Recoverer)

	r.Get(config.DefaultHealthPath, health.Handler())
	for _, route := range routes {
		r.Get(route.Path, gateway.Handler(route))
	}

	return r
}

// accessLog logs each request at debug with the chi request ID.
func accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("component", "server").
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(next)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully within the
// configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("component", "server").
			Str("addr", ln.Addr().String()).
			Msg("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownTimeout := s.cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = config.DefaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.logger.Info().Str("component", "server").Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}
