package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/book-warehouse-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/book-warehouse-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

// OpenEventStore opens the engine selected by cfg.Storage. The PostgreSQL engines get their schema ensured.
// Connections are registered with closers.
func OpenEventStore(
	ctx context.Context,
	cfg config.Config,
	logger *oteladapters.SlogBridgeLogger,
	tel Telemetry,
	closers *Closers,
) (shell.EventStore, error) {

	if cfg.Storage == config.StorageMemory {
		return memoryengine.NewEventStore(memoryengine.WithLogger(logger)), nil
	}

	options := []postgresengine.Option{
		postgresengine.WithTableName(cfg.EventsTable),
		postgresengine.WithContextualLogger(logger),
		postgresengine.WithMetrics(tel.Metrics),
		postgresengine.WithTracing(tel.Tracing),
	}

	var (
		eventStore *postgresengine.EventStore
		err        error
	)

	switch cfg.Storage {
	case config.StoragePGXPool:
		eventStore, err = openPGXEventStore(ctx, cfg, closers, options)

	case config.StorageSQLDB:
		db, openErr := config.PostgresSQLDB(ctx, cfg.PostgresDSN)
		if openErr != nil {
			return nil, openErr
		}
		closers.Add(func() { _ = db.Close() })

		eventStore, err = postgresengine.NewEventStoreFromSQLDB(db, options...)

	case config.StorageSQLXDB:
		db, openErr := config.PostgresSQLX(ctx, cfg.PostgresDSN)
		if openErr != nil {
			return nil, openErr
		}
		closers.Add(func() { _ = db.Close() })

		eventStore, err = postgresengine.NewEventStoreFromSQLX(db, options...)

	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedStorage, cfg.Storage)
	}

	if err != nil {
		return nil, err
	}

	if schemaErr := eventStore.EnsureSchema(ctx); schemaErr != nil {
		return nil, schemaErr
	}

	return eventStore, nil
}

// openPGXEventStore routes queries to the replica when one is configured.
func openPGXEventStore(
	ctx context.Context,
	cfg config.Config,
	closers *Closers,
	options []postgresengine.Option,
) (*postgresengine.EventStore, error) {

	primary, err := openPGXPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	closers.Add(primary.Close)

	if cfg.PostgresReplicaDSN == "" {
		return postgresengine.NewEventStoreFromPGXPool(primary, options...)
	}

	replica, err := openPGXPool(ctx, cfg.PostgresReplicaDSN)
	if err != nil {
		return nil, err
	}
	closers.Add(replica.Close)

	return postgresengine.NewEventStoreFromPGXPoolAndReplica(primary, replica, options...)
}

func openPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, err := config.PostgresPGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, pingErr
	}

	return pool, nil
}
