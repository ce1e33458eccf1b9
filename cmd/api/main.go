// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the alloyforge combiner and its read API.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL and run migrations (optional).
//  4. Connect to Redis (optional, requires PostgreSQL).
//  5. Open the catalog source and the registration sink.
//  6. Run the combination batch once.
//  7. Start HTTP server with graceful shutdown (unless SERVE=false).
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

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/alloyforge/internal/alloy"
	"github.com/taibuivan/alloyforge/internal/api"
	"github.com/taibuivan/alloyforge/internal/catalog"
	"github.com/taibuivan/alloyforge/internal/core/material"
	"github.com/taibuivan/alloyforge/internal/core/recipe"
	"github.com/taibuivan/alloyforge/internal/platform/config"
	"github.com/taibuivan/alloyforge/internal/platform/constants"
	"github.com/taibuivan/alloyforge/internal/platform/ctxutil"
	"github.com/taibuivan/alloyforge/internal/platform/migration"
	pgstore "github.com/taibuivan/alloyforge/internal/platform/postgres"
	redisstore "github.com/taibuivan/alloyforge/internal/platform/redis"
	"github.com/taibuivan/alloyforge/internal/registry"
	"github.com/taibuivan/alloyforge/pkg/uuidv7"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("catalog_source", cfg.CatalogSource),
		slog.Bool("postgres", cfg.UsePostgres()),
		slog.Bool("redis", cfg.UseRedis()),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	var pool *pgxpool.Pool
	if cfg.UsePostgres() {
		pool, err = pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, cfg.Debug, log), "run migrations")
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var rdb *goredis.Client
	switch {
	case cfg.UseRedis() && pool == nil:
		log.Warn("redis_ignored_without_postgres")
	case cfg.UseRedis():
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Catalog & Sink ─────────────────────────────────────────────────
	var source catalog.Source
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		source = material.NewPostgresRepository(pool)
	default:
		source = catalog.NewHCLSource(cfg.CatalogPath)
	}

	base, err := source.ListMaterials(startupCtx, material.Any)
	must(log, err, "load catalog")
	log.Info("catalog_loaded", slog.Int("materials", len(base)))

	var (
		sink          registry.Sink
		materialRepo  material.Repository
		recipeRepo    recipe.Repository
		materialCache material.Cache
		recipeCache   recipe.Cache
	)

	if pool != nil {
		materials := material.NewPostgresRepository(pool)
		recipes := recipe.NewPostgresRepository(pool)

		if cfg.CatalogSource == config.CatalogSourceHCL {
			_, err := registry.Seed(ctxutil.WithLogger(startupCtx, log), materials, base)
			must(log, err, "seed catalog")
		}

		var invalidator registry.Invalidator
		if rdb != nil {
			cache := registry.NewRedisCache(rdb, constants.CacheTTL)
			invalidator, materialCache, recipeCache = cache, cache, cache
		}

		sink = registry.NewStore(materials, recipes, invalidator)
		materialRepo, recipeRepo = materials, recipes
	} else {
		memory := registry.NewMemory(base...)
		sink = memory
		materialRepo, recipeRepo = memory, memory
	}

	// ── 6. Combination Batch ──────────────────────────────────────────────
	strategy, err := alloy.ParseStatStrategy(cfg.MergeStatStrategy)
	must(log, err, "parse stat strategy")

	provenance := alloy.Provenance{ContentPack: cfg.ContentPack, BatchID: uuidv7.New()}
	batch := alloy.NewBatch(source, sink, provenance, log, alloy.WithStatStrategy(strategy))

	batchCtx, batchCancel := context.WithTimeout(context.Background(), constants.BatchTimeout)
	report, err := batch.Run(batchCtx)
	batchCancel()
	must(log, err, "run combination batch")

	if !cfg.Serve {
		log.Info("serve_disabled_exiting", slog.String("outcome", string(report.Outcome)))
		return
	}

	// ── 7. Health handlers ────────────────────────────────────────────────
	deps := api.HealthDependencies{}
	if pool != nil {
		deps.CheckDatabase = func() error { return pgstore.Ping(context.Background(), pool) }
	}
	if rdb != nil {
		deps.CheckCache = func() error { return redisstore.Ping(context.Background(), rdb) }
	}
	liveness, readiness := api.NewHealthHandlers(deps, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Material:  material.NewHandler(material.NewService(materialRepo, materialCache, log)),
		Recipe:    recipe.NewHandler(recipe.NewService(recipeRepo, recipeCache, log)),
		Batch:     api.NewBatchHandler(report),
	}

	server := api.NewServer(serverCtx, cfg, log, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
