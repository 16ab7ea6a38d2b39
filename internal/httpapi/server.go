package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pecan/internal/logging"
)

// Shutdowner is the subset of Service the server drains on exit.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Serve binds router to host:port and blocks until SIGINT/SIGTERM or ctx is
// canceled, then drains in-flight requests and tears down svc before
// returning.
func Serve(ctx context.Context, host string, port int, router http.Handler, svc Shutdowner) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logging.S().Infow("http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-quit:
		logging.S().Infow("received signal, starting graceful shutdown", "signal", sig.String())
	case <-ctx.Done():
		logging.S().Infow("context canceled, starting graceful shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.S().Errorw("http server shutdown error", "error", err)
	}

	if err := svc.Shutdown(shutdownCtx); err != nil {
		logging.S().Errorw("service shutdown error", "error", err)
		return err
	}

	logging.S().Infow("graceful shutdown complete")
	return nil
}
