package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// serve runs the public listener, plus the admin listener when a metrics port
// is configured, until ctx is canceled or SIGINT/SIGTERM arrives. Both are
// then shut down gracefully within the configured timeout.
func (app *application) serve(ctx context.Context, router http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	servers := []*http.Server{{
		Addr:         fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:      router,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
	}}
	if port := app.config.Metrics.Port; port > 0 {
		servers = append(servers, &http.Server{
			Addr:        fmt.Sprintf(":%d", port),
			Handler:     app.setupAdminRouter(),
			ReadTimeout: app.config.Server.ReadTimeout,
		})
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, srv := range servers {
		g.Go(func() error {
			app.logger.Info("Starting server", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("shutdown of %s failed: %w", srv.Addr, err))
			}
		}
		if err := errors.Join(errs...); err != nil {
			app.logger.Error("Server shutdown failed", "error", err)
			return err
		}

		app.logger.Info("Server shutdown completed")
		return nil
	})

	return g.Wait()
}
