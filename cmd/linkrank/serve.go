package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/delivery/http/handler"
	"github.com/user/linkrank/internal/delivery/http/router"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the ranking over HTTP:

  POST /api/rank          {"seed": "...", "keyword": "..."}
  GET  /api/reports/{id}  stored rank report (needs POSTGRES_URL)
  GET  /api/health
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	apiHandler := handler.NewHandler(a.runner, a.searcher, a.reports, a.cfg.SeedURL, a.checks, a.logger)
	server := &http.Server{
		Addr:        ":" + a.cfg.ServerPort,
		Handler:     router.New(apiHandler, a.metrics, a.registry, a.logger),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started", zap.String("port", a.cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.logger.Info("server exiting")
	return nil
}
