// Package httpapi serves the scheduling engine over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.trai.ch/cadence/internal/core/domain"
	"go.trai.ch/cadence/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Route patterns served by the API.
const (
	RouteRoot     = "GET /{$}"
	RouteHealth   = "GET /api/health"
	RouteSchedule = "POST /api/v1/projects/{projectId}/schedule"
)

// Server exposes a ports.Scheduler over HTTP.
type Server struct {
	scheduler ports.Scheduler
	logger    ports.Logger
	cfg       domain.ServerConfig
	version   string

	// inflight collapses identical concurrent scheduling requests.
	inflight singleflight.Group
}

// NewServer creates a new Server.
func NewServer(scheduler ports.Scheduler, logger ports.Logger, cfg domain.ServerConfig, version string) *Server {
	return &Server{
		scheduler: scheduler,
		logger:    logger,
		cfg:       cfg,
		version:   version,
	}
}

// Handler returns the API routes wrapped in the CORS and request logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	var schedule http.Handler = http.HandlerFunc(s.handleSchedule)
	if s.cfg.RequestTimeout > 0 {
		schedule = http.TimeoutHandler(schedule, s.cfg.RequestTimeout, timeoutBody)
	}

	mux.Handle(RouteSchedule, schedule)
	mux.HandleFunc(RouteHealth, s.handleHealth)
	mux.HandleFunc(RouteRoot, s.handleRoot)
	mux.HandleFunc("/", s.handleNotFound)

	return s.logRequests(s.cors(mux))
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(fmt.Sprintf("cadence API listening on http://%s", ln.Addr()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.With(zerr.Wrap(err, domain.ErrServerFailed.Error()), "addr", ln.Addr().String())
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down cadence API")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, domain.ErrServerFailed.Error())
		}
		return nil
	})

	return g.Wait()
}
