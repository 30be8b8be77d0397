// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command command-api is the write side of the Lang service.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when REDIS_URL is set (integration events).
//  5. Run database migrations (idempotent).
//  6. Wire the mediator and the Lang command handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/taibuivan/configlang/internal/api"
	"github.com/taibuivan/configlang/internal/command/lang"
	"github.com/taibuivan/configlang/internal/platform/config"
	"github.com/taibuivan/configlang/internal/platform/constants"
	"github.com/taibuivan/configlang/internal/platform/logger"
	"github.com/taibuivan/configlang/internal/platform/mediator"
	"github.com/taibuivan/configlang/internal/platform/migration"
	"github.com/taibuivan/configlang/internal/platform/persistence"
	pgstore "github.com/taibuivan/configlang/internal/platform/postgres"
	redisstore "github.com/taibuivan/configlang/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := logger.New(os.Stdout, constants.AppName+"-command", false)
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
		log = logger.New(os.Stdout, constants.AppName+"-command", true)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("events", cfg.HasRedis()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Startup deadline so misconfiguration is caught quickly.
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

	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var publisher lang.Publisher = lang.NopPublisher{}
	if cfg.HasRedis() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		stream := redisstore.NewStreamWriter(rdb, cfg.LangEventStream, constants.LangEventStreamMaxLen)
		publisher = lang.NewRedisPublisher(stream)
		health.CheckCache = func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	if cfg.RunMigrations {
		if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	m := mediator.New(mediator.Logging(log), mediator.Validation())
	lang.NewCommandHandlers(lang.NewUnitOfWorkFactory(persistence.FromPool(pool)), publisher, log).Register(m)
	langHandler := lang.NewHandler(m)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(ctx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Mounts: []api.Mount{
			{Pattern: api.ControllerPrefix, Handler: langHandler.ControllerRoutes()},
			{Pattern: api.MinimalPrefix, Handler: langHandler.MinimalRoutes()},
		},
	})

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))
		return server.Shutdown(constants.ShutdownTimeout)
	})

	return group.Wait()
}
