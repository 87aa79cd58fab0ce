package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"buildboard-api/internal/handler"
	"buildboard-api/internal/router"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the board HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.close()

			return serve(ctx, a)
		},
	}
}

func serve(ctx context.Context, a *app) error {
	cfg := a.cfg

	r := router.New(router.Config{
		Handler:        handler.New(cfg.App, a.repo),
		CatalogHandler: handler.NewCatalogHandler(a.board),
		RequestHandler: handler.NewRequestHandler(a.board),
		BoardHandler:   handler.NewBoardHandler(a.board),
		AdminHandler:   handler.NewAdminHandler(a.repo, a.board, cfg.Storage.Type, cfg.Cache.Type),
		Logger:         a.log,
		AllowedOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", cfg.Server.Address()).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.WithError(err).Error("Server shutdown error")
		return err
	}
	a.log.Info("Server stopped")
	return nil
}
