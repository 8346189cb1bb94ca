/*
serve.go - HTTP server command

STARTUP SEQUENCE:
  1. Resolve settings (env, .env, flags)
  2. Open SQLite store, load pay policy, start worker pool
  3. Configure HTTP router
  4. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Drain the worker pool and close the database

EXAMPLES:
  # Run with file database
  shiftpay serve --db=./data/shifts.db

  # Run with in-memory database on another port
  shiftpay serve --db=":memory:" --port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - config/settings.go: Environment variables
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/shift-pay/api"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.settings.Port = port
				if err := a.settings.Validate(); err != nil {
					return err
				}
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port")
	return cmd
}

// serve blocks until ctx is cancelled or the listener fails.
func (a *app) serve(ctx context.Context) error {
	svc, err := a.open()
	if err != nil {
		return err
	}

	handler := api.NewHandler(svc, a.log)
	router := api.NewRouter(handler, api.RouterOptions{AllowedOrigins: a.settings.AllowedOrigins})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.settings.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("server starting",
			zap.Int("port", a.settings.Port),
			zap.String("env", a.settings.Env),
			zap.String("db", a.settings.DBPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}
