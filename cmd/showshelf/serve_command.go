package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/Belphemur/ShowShelf/internal/catalogue"
	"github.com/Belphemur/ShowShelf/internal/config"
	grpcserver "github.com/Belphemur/ShowShelf/internal/grpc"
	"github.com/Belphemur/ShowShelf/internal/metrics"
	"github.com/Belphemur/ShowShelf/internal/models"
	"github.com/Belphemur/ShowShelf/internal/reporting"
	"github.com/Belphemur/ShowShelf/internal/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalogue over gRPC and the web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return ctx.withCatalogue(runCtx, func(svc *catalogue.Service) error {
				return serve(runCtx, ctx.config, svc)
			})
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, svc *catalogue.Service) error {
	logger := config.GetLogger()

	flush, err := reporting.Init(reporting.Options{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     version,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Sentry, error reporting disabled")
	}
	defer flush()

	logger.Info().
		Str("storage_provider", cfg.Storage.Provider).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Int("shows", len(svc.List())).
		Msg("Application started with configuration")

	unsubscribe := svc.Subscribe(func(change models.Change) {
		logger.Info().
			Str("kind", change.Kind.String()).
			Str("title", change.Title).
			Int("shows", change.Count).
			Msg("Catalogue changed")
	})
	defer unsubscribe()

	var httpServers []*http.Server

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		httpServers = append(httpServers, metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port))
	}
	if cfg.Web.Enabled {
		httpServers = append(httpServers, web.NewHTTPServer(cfg.Server.Address, cfg.Web.Port, web.NewHandler(svc, logger)))
	}
	for _, srv := range httpServers {
		go func() {
			logger.Info().Str("address", srv.Addr).Msg("Starting HTTP server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Str("address", srv.Addr).Msg("HTTP server failed")
			}
		}()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for _, srv := range httpServers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Str("address", srv.Addr).Msg("Failed to shutdown HTTP server")
			}
		}
	}()

	// Create and configure the gRPC server
	grpcServer := grpcserver.NewGRPCServer(svc, logger)

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", address, err)
	}

	logger.Info().Str("address", address).Msg("Starting gRPC server")

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		logger.Info().Msg("Received shutdown signal")
		grpcServer.GracefulStop()
	}()

	if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
