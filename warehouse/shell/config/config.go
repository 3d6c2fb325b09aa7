package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageMemory  = "memory"
	StoragePGXPool = "pgx.pool"
	StorageSQLDB   = "sql.db"
	StorageSQLXDB  = "sqlx.db"

	CatalogStatic = "static"
	CatalogSQL    = "sql"

	CatalogDriverPostgres = "postgres"
	CatalogDriverSQLite   = "sqlite"

	TelemetryNone = "none"
	TelemetryOTLP = "otlp"
)

const (
	envHTTPAddr         = "WAREHOUSE_HTTP_ADDR"
	envStorage          = "WAREHOUSE_STORAGE"
	envPostgresDSN      = "WAREHOUSE_POSTGRES_DSN"
	envPostgresReplica  = "WAREHOUSE_POSTGRES_REPLICA_DSN"
	envEventsTable      = "WAREHOUSE_EVENTS_TABLE"
	envCatalog          = "WAREHOUSE_CATALOG"
	envCatalogDSN       = "WAREHOUSE_CATALOG_DSN"
	envCatalogDriver    = "WAREHOUSE_CATALOG_DRIVER"
	envCatalogBooks     = "WAREHOUSE_CATALOG_BOOKS"
	envCatalogCacheSize = "WAREHOUSE_CATALOG_CACHE_SIZE"
	envLogLevel         = "WAREHOUSE_LOG_LEVEL"
	envCORSOrigins      = "WAREHOUSE_CORS_ORIGINS"
	envTelemetry        = "WAREHOUSE_TELEMETRY"
)

var (
	ErrUnsupportedStorage       = errors.New("unsupported storage")
	ErrUnsupportedCatalog       = errors.New("unsupported catalog")
	ErrUnsupportedCatalogDriver = errors.New("unsupported catalog driver")
	ErrUnsupportedTelemetry     = errors.New("unsupported telemetry")
	ErrMissingPostgresDSN       = errors.New("a postgres dsn is required for this storage")
	ErrMissingCatalogDSN        = errors.New("a catalog dsn is required for the sql catalog")
	ErrInvalidCatalogCacheSize  = errors.New("catalog cache size must be a positive integer")
	ErrInvalidLogLevel          = errors.New("invalid log level")
)

// Config is the configuration of the warehouse server.
type Config struct {
	HTTPAddr           string
	Storage            string
	PostgresDSN        string
	PostgresReplicaDSN string
	EventsTable        string
	Catalog            string
	CatalogDSN         string
	CatalogDriver      string
	CatalogBooks       []string
	CatalogCacheSize   int
	LogLevel           slog.Level
	CORSOrigins        []string
	Telemetry          string
}

// Load reads the Config from the environment. Variables from the given .env files are loaded first,
// without overriding variables that are already set. Missing files are ignored.
func Load(envFiles ...string) (Config, error) {
	for _, envFile := range envFiles {
		if _, statErr := os.Stat(envFile); statErr != nil {
			continue
		}

		if loadErr := godotenv.Load(envFile); loadErr != nil {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, loadErr)
		}
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds the Config from a lookup function with the signature of os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if val, ok := lookup(key); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}

		return fallback
	}

	cfg := Config{
		HTTPAddr:           get(envHTTPAddr, ":8080"),
		Storage:            get(envStorage, StorageMemory),
		PostgresDSN:        get(envPostgresDSN, ""),
		PostgresReplicaDSN: get(envPostgresReplica, ""),
		EventsTable:        get(envEventsTable, "events"),
		Catalog:            get(envCatalog, CatalogStatic),
		CatalogDSN:         get(envCatalogDSN, ""),
		CatalogDriver:      get(envCatalogDriver, CatalogDriverSQLite),
		CatalogBooks:       splitList(get(envCatalogBooks, "")),
		CORSOrigins:        splitList(get(envCORSOrigins, "*")),
		Telemetry:          get(envTelemetry, TelemetryNone),
	}

	cacheSize, convErr := strconv.Atoi(get(envCatalogCacheSize, "1024"))
	if convErr != nil || cacheSize <= 0 {
		return Config{}, ErrInvalidCatalogCacheSize
	}
	cfg.CatalogCacheSize = cacheSize

	if levelErr := cfg.LogLevel.UnmarshalText([]byte(get(envLogLevel, "INFO"))); levelErr != nil {
		return Config{}, errors.Join(ErrInvalidLogLevel, levelErr)
	}

	if validateErr := cfg.validate(); validateErr != nil {
		return Config{}, validateErr
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.Storage {
	case StorageMemory:
	case StoragePGXPool, StorageSQLDB, StorageSQLXDB:
		if cfg.PostgresDSN == "" {
			return fmt.Errorf("%w: %s", ErrMissingPostgresDSN, cfg.Storage)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedStorage, cfg.Storage)
	}

	switch cfg.Catalog {
	case CatalogStatic:
	case CatalogSQL:
		if cfg.CatalogDSN == "" {
			return ErrMissingCatalogDSN
		}

		if cfg.CatalogDriver != CatalogDriverPostgres && cfg.CatalogDriver != CatalogDriverSQLite {
			return fmt.Errorf("%w: %s", ErrUnsupportedCatalogDriver, cfg.CatalogDriver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedCatalog, cfg.Catalog)
	}

	if cfg.Telemetry != TelemetryNone && cfg.Telemetry != TelemetryOTLP {
		return fmt.Errorf("%w: %s", ErrUnsupportedTelemetry, cfg.Telemetry)
	}

	return nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	items := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}

	return items
}
