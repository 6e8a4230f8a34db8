package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Routing provider selection.
type RoutingProvider string

const (
	ProviderORS       RoutingProvider = "ors"
	ProviderGoogle    RoutingProvider = "google"
	ProviderHaversine RoutingProvider = "haversine"
)

// Persistent cache backend selection.
type CacheBackend string

const (
	CacheNone     CacheBackend = "none"
	CacheSQLite   CacheBackend = "sqlite"
	CachePostgres CacheBackend = "postgres"
)

// Plan store selection.
type PlanStore string

const (
	StoreMemory PlanStore = "memory"
	StoreRedis  PlanStore = "redis"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	LogLevel    string
	Port        string

	Provider          RoutingProvider
	ORSAPIKey         string
	ORSBaseURL        string
	ORSProfile        string
	GoogleAPIKey      string
	GeocodeCountry    string
	HaversineSpeedKmh float64

	CacheBackend CacheBackend
	DBPath       string // SQLite file
	DatabaseURL  string // Postgres DSN

	PlanStore     PlanStore
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PlanTTL       time.Duration

	MaxDestinations int
	Concurrency     int
	PlanTimeout     time.Duration

	FontPath         string
	DocumentLanguage string
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: Get("APP_ENV", "development"),
		LogLevel:    Get("LOG_LEVEL", "info"),
		Port:        Get("PORT", "8080"),

		Provider:          RoutingProvider(strings.ToLower(Get("ROUTING_PROVIDER", string(ProviderORS)))),
		ORSAPIKey:         Get("ORS_API_KEY", ""),
		ORSBaseURL:        Get("ORS_BASE_URL", "https://api.openrouteservice.org"),
		ORSProfile:        Get("ORS_PROFILE", "driving-car"),
		GoogleAPIKey:      Get("GOOGLE_MAPS_API_KEY", ""),
		GeocodeCountry:    Get("GEOCODE_COUNTRY", ""),
		HaversineSpeedKmh: getEnvFloat("HAVERSINE_SPEED_KMH", 30),

		CacheBackend: CacheBackend(strings.ToLower(Get("CACHE_BACKEND", string(CacheSQLite)))),
		DBPath:       Get("DB_PATH", "data/cache.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),

		PlanStore:     PlanStore(strings.ToLower(Get("PLAN_STORE", string(StoreMemory)))),
		RedisAddr:     Get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: Get("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		PlanTTL:       getEnvDuration("PLAN_TTL", 30*time.Minute),

		MaxDestinations: getEnvInt("MAX_DESTINATIONS", 6),
		Concurrency:     getEnvInt("PLAN_CONCURRENCY", 4),
		PlanTimeout:     getEnvDuration("PLAN_TIMEOUT", 60*time.Second),

		FontPath:         Get("DOCUMENT_FONT_PATH", ""),
		DocumentLanguage: Get("DOCUMENT_LANGUAGE", "en"),
	}

	switch cfg.Provider {
	case ProviderORS:
		if strings.TrimSpace(cfg.ORSAPIKey) == "" {
			return nil, fmt.Errorf("ORS_API_KEY is required when ROUTING_PROVIDER=%s", cfg.Provider)
		}
	case ProviderGoogle:
		if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
			return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is required when ROUTING_PROVIDER=%s", cfg.Provider)
		}
	case ProviderHaversine:
	default:
		return nil, fmt.Errorf("unsupported routing provider %q", cfg.Provider)
	}

	switch cfg.CacheBackend {
	case CacheNone, CacheSQLite:
	case CachePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when CACHE_BACKEND=%s", cfg.CacheBackend)
		}
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}

	if cfg.PlanStore != StoreMemory && cfg.PlanStore != StoreRedis {
		return nil, fmt.Errorf("unsupported plan store %q", cfg.PlanStore)
	}

	if cfg.MaxDestinations < 0 {
		return nil, fmt.Errorf("MAX_DESTINATIONS must not be negative, got %d", cfg.MaxDestinations)
	}
	if cfg.Concurrency < 1 {
		return nil, fmt.Errorf("PLAN_CONCURRENCY must be at least 1, got %d", cfg.Concurrency)
	}

	return cfg, nil
}

// Get returns the environment value for key, or def when unset.
func Get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvDuration accepts Go durations ("90s", "2m") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}
