// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command query-api is the read side of the Lang service.
//
// It serves the same routes as the command binary for reads (REST and
// minimal) and the LangService gRPC API. Schema migrations are owned by the
// command binary, so this one never migrates.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Wire the mediator and the Lang query handlers.
//  5. Start HTTP and gRPC servers with graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/taibuivan/configlang/internal/api"
	"github.com/taibuivan/configlang/internal/platform/config"
	"github.com/taibuivan/configlang/internal/platform/constants"
	"github.com/taibuivan/configlang/internal/platform/logger"
	"github.com/taibuivan/configlang/internal/platform/mediator"
	"github.com/taibuivan/configlang/internal/platform/persistence"
	pgstore "github.com/taibuivan/configlang/internal/platform/postgres"
	"github.com/taibuivan/configlang/internal/query/lang"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := logger.New(os.Stdout, constants.AppName+"-query", false)
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("startup failure", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server stopped cleanly")
}

func run(log *slog.Logger) error {
	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if cfg.Debug {
		log = logger.New(os.Stdout, constants.AppName+"-query", true)
		slog.SetDefault(log)
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("grpc_port", cfg.GRPCPort),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	startupCtx, startupCancel := context.WithTimeout(ctx, constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.ServiceName, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	m := mediator.New(mediator.Logging(log), mediator.Validation())
	lang.NewQueryHandlers(lang.NewRepository(persistence.FromPool(pool))).Register(m)
	langHandler := lang.NewHandler(m)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}, log)

	// ── 5. Servers ────────────────────────────────────────────────────────
	httpServer := api.NewServer(ctx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Mounts: []api.Mount{
			{Pattern: api.ControllerPrefix, Handler: langHandler.Routes()},
			{Pattern: api.MinimalPrefix, Handler: langHandler.Routes()},
		},
	})
	grpcServer := api.NewGRPCServer(cfg.GRPCPort, log, lang.NewGRPCService(m, log))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		if err := grpcServer.ListenAndServe(); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down servers", slog.Duration("timeout", constants.ShutdownTimeout))
		grpcServer.Shutdown(constants.ShutdownTimeout)
		return httpServer.Shutdown(constants.ShutdownTimeout)
	})

	return group.Wait()
}
