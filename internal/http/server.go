package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redmonkez12/friend-app/internal/config"
	"github.com/redmonkez12/friend-app/internal/logging"
)

// Server runs the API until its context is cancelled
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *logging.Logger
}

// NewServer listens on cfg.Port with the configured read, write and
// shutdown timeouts
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
}

// OnShutdown registers f to run when shutdown starts. http.Server does not
// track hijacked connections, so websocket owners close theirs here.
func (s *Server) OnShutdown(f func()) {
	s.httpServer.RegisterOnShutdown(f)
}

// Run serves until ctx is done, then drains in-flight requests for at most
// the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server", "timeout", s.shutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
