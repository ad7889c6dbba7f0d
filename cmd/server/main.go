package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hillcrest/activities-backend/internal/cache"
	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/database"
	"github.com/hillcrest/activities-backend/internal/handler"
	"github.com/hillcrest/activities-backend/internal/logger"
	"github.com/hillcrest/activities-backend/internal/repository"
	"github.com/hillcrest/activities-backend/internal/repository/memory"
	"github.com/hillcrest/activities-backend/internal/repository/postgres"
	"github.com/hillcrest/activities-backend/internal/router"
	"github.com/hillcrest/activities-backend/internal/seed"
	"github.com/hillcrest/activities-backend/internal/service"
	"github.com/hillcrest/activities-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Hillcrest Activities Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Select Storage Backend ────────────────────────────────────────
	// Postgres when reachable; otherwise an in-memory store pre-loaded
	// with the fixture catalog. The choice is made once, here.
	var store repository.Store
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("PostgreSQL unreachable, falling back to in-memory store")
		memStore := memory.NewStore()
		if err := seed.Load(ctx, memStore, cfg.BcryptCost); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed in-memory store")
		}
		store = memStore
	} else {
		defer pool.Close()
		store = postgres.NewStore(pool)
	}

	// ─── Connect to Redis (Optional) ───────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unreachable, running without cache and live feed")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}
	readCache := cache.New(rdb, cfg.CacheTTL, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, store.Teachers())
	activityService := service.NewActivityService(store.Activities(), store.Students(), readCache, log)
	announcementService := service.NewAnnouncementService(store.Announcements(), readCache, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Activity:     handler.NewActivityHandler(activityService),
		Auth:         handler.NewAuthHandler(authService),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		WS:           handler.NewWSHandler(readCache, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
