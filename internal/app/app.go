// Package app wires concrete adapters behind ports according to the loaded
// configuration. Both the HTTP server and the planner CLI build on it.
package app

import (
	"context"
	"database/sql"
	"dropoff-route-planner/internal/adapters/cache"
	"dropoff-route-planner/internal/adapters/distance"
	"dropoff-route-planner/internal/adapters/document"
	"dropoff-route-planner/internal/adapters/geocode"
	"dropoff-route-planner/internal/adapters/google"
	"dropoff-route-planner/internal/adapters/ors"
	"dropoff-route-planner/internal/adapters/store"
	"dropoff-route-planner/internal/api/handlers"
	"dropoff-route-planner/internal/config"
	"dropoff-route-planner/internal/platform/db"
	"dropoff-route-planner/internal/ports"
	"dropoff-route-planner/internal/services"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// App holds the wired collaborators of one process.
type App struct {
	Config    *config.Config
	Planner   *services.Planner
	Store     ports.PlanStore
	Exporter  ports.DocumentExporter
	Formatter services.SheetFormatter

	// DB backs the persistent caches; nil when CACHE_BACKEND=none.
	DB      *sql.DB
	Dialect cache.Dialect

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (_ *App, err error) {
	a := &App{Config: cfg}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	geocodeCache, legCache, err := a.openCaches(ctx)
	if err != nil {
		return nil, err
	}

	resolver, provider, err := collaborators(cfg)
	if err != nil {
		return nil, err
	}

	// Every candidate of a run shares the same addresses; memoize and de-duplicate lookups.
	resolver = geocode.NewCachingResolver(resolver, geocodeCache)
	if legCache != nil && cfg.Provider != config.ProviderHaversine {
		provider = distance.NewCachingProvider(provider, legCache)
	}

	a.Planner = services.NewPlanner(&services.ScheduleBuilder{
		Resolver: resolver,
		Provider: provider,
	}, cfg.Concurrency, cfg.PlanTimeout)

	a.Store, err = a.newStore(ctx)
	if err != nil {
		return nil, err
	}

	a.Exporter = document.NewPDFExporter(document.WithFont(cfg.FontPath))
	a.Formatter = services.NewSheetFormatter(cfg.DocumentLanguage)

	logger.Info().
		Str("provider", string(cfg.Provider)).
		Str("cache", string(cfg.CacheBackend)).
		Str("plan_store", string(cfg.PlanStore)).
		Int("concurrency", cfg.Concurrency).
		Dur("plan_timeout", cfg.PlanTimeout).
		Msg("planner wired")

	return a, nil
}

// PlanHandler returns the HTTP handler for the planning session endpoints.
func (a *App) PlanHandler() *handlers.PlanHandler {
	return &handlers.PlanHandler{
		Planner:         a.Planner,
		Store:           a.Store,
		Exporter:        a.Exporter,
		Formatter:       a.Formatter,
		MaxDestinations: a.Config.MaxDestinations,
		Validate:        validator.New(),
	}
}

// Close releases databases and connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// openCaches returns nil caches when persistence is disabled.
func (a *App) openCaches(ctx context.Context) (ports.GeocodeCache, ports.LegCache, error) {
	cfg := a.Config

	var dsn string
	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, nil, nil
	case config.CacheSQLite:
		a.Dialect = cache.SQLite
		dsn = cfg.DBPath
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create cache dir: %w", err)
			}
		}
	case config.CachePostgres:
		a.Dialect = cache.Postgres
		dsn = cfg.DatabaseURL
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}

	conn, err := db.Open(ctx, a.Dialect.DriverName(), dsn)
	if err != nil {
		return nil, nil, err
	}
	a.DB = conn
	a.closers = append(a.closers, conn.Close)

	if err := cache.InitSchema(ctx, conn); err != nil {
		return nil, nil, err
	}

	return cache.NewGeocodeCache(conn, a.Dialect), cache.NewLegCache(conn, a.Dialect), nil
}

func (a *App) newStore(ctx context.Context) (ports.PlanStore, error) {
	cfg := a.Config
	if cfg.PlanStore != config.StoreRedis {
		return store.NewMemoryStore(cfg.PlanTTL), nil
	}

	client, err := store.NewRedisClient(ctx, store.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	return store.NewRedisStore(client, cfg.PlanTTL), nil
}

// collaborators picks the geocoder and leg cost provider for the configured routing provider.
// The haversine provider geocodes with whichever service has a key, or only from the cache.
func collaborators(cfg *config.Config) (ports.WaypointResolver, ports.LegCostProvider, error) {
	switch cfg.Provider {
	case config.ProviderORS:
		c, err := newORS(cfg)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case config.ProviderGoogle:
		c, err := newGoogle(cfg)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case config.ProviderHaversine:
		provider := distance.NewHaversineProvider(cfg.HaversineSpeedKmh)
		switch {
		case cfg.ORSAPIKey != "":
			c, err := newORS(cfg)
			return c, provider, err
		case cfg.GoogleAPIKey != "":
			c, err := newGoogle(cfg)
			return c, provider, err
		default:
			return geocode.OfflineResolver{}, provider, nil
		}
	default:
		return nil, nil, fmt.Errorf("unsupported routing provider %q", cfg.Provider)
	}
}

func newORS(cfg *config.Config) (*ors.Client, error) {
	return ors.NewClient(cfg.ORSAPIKey,
		ors.WithBaseURL(cfg.ORSBaseURL),
		ors.WithProfile(cfg.ORSProfile),
		ors.WithCountry(cfg.GeocodeCountry),
	)
}

func newGoogle(cfg *config.Config) (*google.Client, error) {
	return google.NewClient(cfg.GoogleAPIKey, google.WithRegion(cfg.GeocodeCountry))
}
