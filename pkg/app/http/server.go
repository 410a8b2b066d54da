package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/chainsafe/audit-register-recon/pkg/config"
)

const (
	defaultShutdownTimeout = 30 * time.Second
	defaultRequestTimeout  = 60 * time.Second
)

// ShutdownHook releases a resource once the server has stopped accepting requests
type ShutdownHook func(ctx context.Context) error

type namedHook struct {
	name string
	fn   ShutdownHook
}

// Server serves one handler until its context ends. On the way down it drains
// in-flight requests first and then runs the shutdown hooks, newest first, so
// background work registered after the database is stopped before it.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *zap.Logger

	mu       sync.Mutex
	listener net.Listener
	hooks    []namedHook
}

// NewServer wraps handler with the configured per-request deadline.
func NewServer(handler http.Handler, cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	if handler == nil {
		return nil, fmt.Errorf("nil handler")
	}
	if cfg == nil {
		return nil, fmt.Errorf("nil server config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return &Server{
		srv: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
			Handler:      middleware.Timeout(requestTimeout)(handler),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}, nil
}

// OnShutdown registers fn to run after the listener is drained
func (s *Server) OnShutdown(name string, fn ShutdownHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, namedHook{name: name, fn: fn})
}

// Listen binds the configured address. Run calls it when it has not been called yet,
// so callers only need it to fail fast on a taken port or to learn the bound address.
func (s *Server) Listen() (net.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr(), nil
	}
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", s.srv.Addr, err)
	}
	s.listener = ln
	return ln.Addr(), nil
}

// Run serves until ctx is canceled or the server fails, then shuts down.
//
// Returns a non-nil error if:
//   - the server exits unexpectedly (not ErrServerClosed),
//   - the drain does not finish within the shutdown timeout, or
//   - a shutdown hook fails.
func (s *Server) Run(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("address", addr.String()))
		err := s.srv.Serve(s.listener)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		if runErr != nil {
			s.logger.Error("HTTP server error", zap.Error(runErr))
			runErr = fmt.Errorf("http server failed: %w", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server", zap.Duration("timeout", s.shutdownTimeout))
	var shutdownErr error
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		shutdownErr = fmt.Errorf("http shutdown: %w", err)
	}

	if err := errors.Join(runErr, shutdownErr, s.runHooks(shutdownCtx)); err != nil {
		return err
	}
	s.logger.Info("HTTP server stopped")
	return nil
}

func (s *Server) runHooks(ctx context.Context) error {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		if err := h.fn(ctx); err != nil {
			s.logger.Error("Shutdown hook failed", zap.String("hook", h.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		s.logger.Debug("Shutdown hook completed", zap.String("hook", h.name))
	}
	return errors.Join(errs...)
}
