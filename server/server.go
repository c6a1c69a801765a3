// Package server is the built-in production server: it serves the vite
// build output with the canonical security headers applied to every
// response, for deployments that do not want the node artifact.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/sync/errgroup"

	"github.com/caasmo/vitesec/config"
)

const shutdownGracefulTimeout = 10 * time.Second

type Server struct {
	cfg    config.Serve
	root   string // absolute path of the dist directory
	logger *slog.Logger
}

func New(cfg config.Serve, root string, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		root:   root,
		logger: logger,
	}
}

// handler builds the router: static files with an index.html fallback for
// client-side routes, the whole chain wrapped in the header middleware.
func (s *Server) handler() http.Handler {
	rt := httprouter.New()
	files := fileHandler(s.root)
	rt.Handler(http.MethodGet, "/*filepath", files)
	rt.Handler(http.MethodHead, "/*filepath", files)

	return SecurityHeaders(rt)
}

// Run serves until ctx is done or the listener fails, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("server configuration",
		"addr", s.cfg.Addr,
		"root", s.root,
	)

	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverError := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Error("ListenAndServe error", "err", err)
			serverError <- err
		}
	}()

	signalCtx, stop := signal.NotifyContext(ctx,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	var runErr error
	select {
	case <-signalCtx.Done():
		s.logger.Info("received shutdown signal - gracefully shutting down")
	case err := <-serverError:
		s.logger.Error("server error - initiating shutdown", "err", err)
		runErr = err
	}
	stop()

	gracefulCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownGracefulTimeout)
	defer cancelShutdown()

	shutdownGroup, _ := errgroup.WithContext(gracefulCtx)
	shutdownGroup.Go(func() error {
		s.logger.Info("shutting down HTTP server")
		if err := srv.Shutdown(gracefulCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "err", err)
			return err
		}
		s.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	if err := shutdownGroup.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
