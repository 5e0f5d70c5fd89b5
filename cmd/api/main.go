// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

// Command api is the entry point for the Prefabrica HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers and start the slot rotation scheduler.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prefabrica/prefabrica/internal/api"
	"github.com/prefabrica/prefabrica/internal/auth"
	"github.com/prefabrica/prefabrica/internal/catalog/house"
	"github.com/prefabrica/prefabrica/internal/catalog/media"
	"github.com/prefabrica/prefabrica/internal/catalog/provider"
	"github.com/prefabrica/prefabrica/internal/catalog/serviceproduct"
	"github.com/prefabrica/prefabrica/internal/platform/config"
	"github.com/prefabrica/prefabrica/internal/platform/constants"
	"github.com/prefabrica/prefabrica/internal/platform/migration"
	pgstore "github.com/prefabrica/prefabrica/internal/platform/postgres"
	redisstore "github.com/prefabrica/prefabrica/internal/platform/redis"
	"github.com/prefabrica/prefabrica/internal/platform/sec"
	"github.com/prefabrica/prefabrica/internal/slots"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "prefabrica"))
	slog.SetDefault(log)

	log.Info("[Prefabrica] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "prefabrica"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	accountRepository := auth.NewAccountRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(accountRepository, sessionRepository, resetTokenRepository, jwtSvc)
	authHandler := auth.NewHandler(authService)

	mediaRepository := media.NewPostgresRepository(pool)
	mediaService := media.NewService(mediaRepository, log)
	mediaHandler := media.NewHandler(mediaService)

	providerRepository := provider.NewPostgresRepository(pool)
	providerService := provider.NewService(providerRepository, mediaService, log)
	providerHandler := provider.NewHandler(providerService)

	houseRepository := house.NewPostgresRepository(pool)
	houseService := house.NewService(houseRepository, mediaService, log)
	houseHandler := house.NewHandler(houseService)

	serviceRepository := serviceproduct.NewPostgresRepository(pool)
	serviceService := serviceproduct.NewService(serviceRepository, providerRepository, mediaService, log)
	serviceHandler := serviceproduct.NewHandler(serviceService)

	// ── 9. Slot Rotation ──────────────────────────────────────────────────
	// The scheduler runs for the whole server lifetime; cancellation on
	// shutdown stops the ticker loop.
	scheduler := slots.NewScheduler(0, cfg.RotationInterval, log)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	go scheduler.Run(schedulerCtx)

	slotRepository := slots.NewPostgresRepository(pool)
	slotService := slots.NewService(slotRepository, scheduler, rdb, log)
	slotHandler := slots.NewHandler(slotService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:       liveness,
		Readiness:      readiness,
		Auth:           authHandler,
		Provider:       providerHandler,
		House:          houseHandler,
		ServiceProduct: serviceHandler,
		Media:          mediaHandler,
		Slots:          slotHandler,
	}

	server := api.NewServer(schedulerCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Stop the rotation ticker before draining HTTP traffic.
	schedulerCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
