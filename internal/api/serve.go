package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"employee-api/internal/logger"
)

// Serve runs srv on ln until ctx is cancelled, then shuts it down within
// shutdownTimeout. A clean shutdown returns nil.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("http server shutting down", "timeout", shutdownTimeout)
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// ListenAndServe is Serve on a fresh TCP listener for srv.Addr.
func ListenAndServe(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log *logger.Logger) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, srv, ln, shutdownTimeout, log)
}
