package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/aplab/internal/ctxlog"
)

const shutdownTimeout = 5 * time.Second

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves HTTP on ln and sweeps idle sessions until ctx is done, then
// shuts down gracefully.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Serve method started.")

	srv := &http.Server{
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sessions.Run(sweepCtx, a.config.SweepInterval)

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("🔬 APlab server starting", "address", fmt.Sprintf("http://%s/", ln.Addr()), "topics", a.registry.Catalog().TopicCount())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return a.shutdown(srv)
}

func (a *App) shutdown(srv *http.Server) error {
	// The parent context is already cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server...")
	if a.live != nil {
		a.live.Close()
	}
	if err := srv.Shutdown(ctx); err != nil {
		a.logger.Error("Server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Server shut down gracefully.")
	return nil
}
