package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/database"
	"github.com/hillcrest/activities-backend/internal/logger"
	"github.com/hillcrest/activities-backend/internal/repository/postgres"
	"github.com/hillcrest/activities-backend/internal/seed"
)

// Loads the fixture catalog (activities + teacher accounts) into Postgres.
// Existing records are left untouched, so re-running is safe.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	store := postgres.NewStore(pool)

	fmt.Println("=== Seeding fixture catalog ===")
	if err := seed.Load(ctx, store, cfg.BcryptCost); err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}

	fmt.Printf("Seed completed: %d activities, %d teacher accounts.\n",
		len(seed.Activities()), len(seed.Teachers()))
}
