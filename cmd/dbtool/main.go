package main

import (
	"context"
	"dropoff-route-planner/internal/adapters/cache"
	"dropoff-route-planner/internal/config"
	"dropoff-route-planner/internal/platform/db"
	"dropoff-route-planner/internal/platform/logging"
	"flag"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// dbtool initializes the persistent cache schema and optionally seeds known addresses.
func main() {
	_ = godotenv.Load()

	backend := flag.String("backend", config.Get("CACHE_BACKEND", "sqlite"), "cache backend: sqlite or postgres")
	seedPath := flag.String("seed", config.Get("SEED_PATH", ""), "JSON file of known addresses to preload into the geocode cache")
	flag.Parse()

	logger := logging.Setup(config.Get("APP_ENV", "development"), config.Get("LOG_LEVEL", "info"))

	dialect, err := cache.ParseDialect(*backend)
	if err != nil {
		log.Fatal().Err(err).Msg("select backend")
	}

	dsn := config.Get("DB_PATH", "data/cache.db")
	if dialect == cache.Postgres {
		dsn = os.Getenv("DATABASE_URL")
		if strings.TrimSpace(dsn) == "" {
			logger.Fatal().Msg("DATABASE_URL is required")
		}
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, dialect.DriverName(), dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	logger.Info().Str("backend", dialect.String()).Msg("initializing cache schema")
	if err := cache.InitSchema(ctx, conn); err != nil {
		logger.Fatal().Err(err).Msg("schema initialization failed")
	}
	logger.Info().Msg("schema ready")

	if *seedPath == "" {
		return
	}
	n, err := cache.SeedGeocodeFromJSON(ctx, cache.NewGeocodeCache(conn, dialect), *seedPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	logger.Info().Int("addresses", n).Str("path", *seedPath).Msg("geocode cache seeded")
}
