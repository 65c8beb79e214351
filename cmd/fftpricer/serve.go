package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dgnsrekt/fftpricer/internal/server"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP pricing service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			srv := server.NewServer(cfg, logger)
			httpServer := &http.Server{
				Addr:         cfg.Server.Addr,
				Handler:      server.NewRouter(srv, logger),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}

			g, ctx := errgroup.WithContext(cmd.Context())

			g.Go(func() error {
				logger.Info("starting server",
					zap.String("addr", httpServer.Addr),
					zap.Float64("rate_per_second", cfg.Server.RatePerSecond),
					zap.Int("burst", cfg.Server.Burst),
				)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})

			g.Go(func() error {
				<-ctx.Done()
				logger.Info("shutting down server...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					logger.Error("server forced to shutdown", zap.Error(err))
					return err
				}
				logger.Info("server stopped")
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
