// Package eventstorewrapper builds the event store that feature and facade tests run against.
//
// ADAPTER_TYPE selects the engine: "memory" (default), "pgx.pool", "sql.db" or "sqlx.db".
// The PostgreSQL engines connect to WAREHOUSE_TEST_POSTGRES_DSN and skip the test when it is not set.
// Every call creates a table of its own, which is dropped when the test ends,
// so that test packages can run in parallel against one database.
package eventstorewrapper

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/book-warehouse-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

const (
	AdapterTypeEnv = "ADAPTER_TYPE"
	PostgresDSNEnv = "WAREHOUSE_TEST_POSTGRES_DSN"

	typeMemory  = "memory"
	typePGXPool = config.StoragePGXPool
	typeSQLDB   = config.StorageSQLDB
	typeSQLXDB  = config.StorageSQLXDB
)

// EventStore is the full engine contract, what command handlers need.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// New returns an empty EventStore of the engine selected by ADAPTER_TYPE.
func New(t testing.TB) EventStore {
	t.Helper()

	adapterType := strings.ToLower(os.Getenv(AdapterTypeEnv))

	switch adapterType {
	case typeMemory, "":
		return memoryengine.NewEventStore()

	case typePGXPool, typeSQLDB, typeSQLXDB:
		return NewPostgres(t, adapterType)

	default:
		t.Fatalf("unsupported %s: %s", AdapterTypeEnv, adapterType)
		return nil
	}
}

// NewPostgres returns a PostgreSQL EventStore over the given adapter type with a fresh table.
func NewPostgres(t testing.TB, adapterType string, options ...postgresengine.Option) *postgresengine.EventStore {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", PostgresDSNEnv)
	}

	ctx := context.Background()
	tableName := "events_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	options = append(options, postgresengine.WithTableName(tableName))

	var es *postgresengine.EventStore
	var err error

	switch adapterType {
	case typePGXPool:
		poolConfig, configErr := config.PostgresPGXPoolConfig(dsn)
		require.NoError(t, configErr)

		pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
		require.NoError(t, poolErr)
		t.Cleanup(pool.Close)

		es, err = postgresengine.NewEventStoreFromPGXPool(pool, options...)

	case typeSQLDB:
		db, dbErr := config.PostgresSQLDB(ctx, dsn)
		require.NoError(t, dbErr)
		t.Cleanup(func() { _ = db.Close() })

		es, err = postgresengine.NewEventStoreFromSQLDB(db, options...)

	case typeSQLXDB:
		db, dbErr := config.PostgresSQLX(ctx, dsn)
		require.NoError(t, dbErr)
		t.Cleanup(func() { _ = db.Close() })

		es, err = postgresengine.NewEventStoreFromSQLX(db, options...)

	default:
		t.Fatalf("unsupported postgres adapter type: %s", adapterType)
	}

	require.NoError(t, err)
	require.NoError(t, es.EnsureSchema(ctx))

	// registered after the connection cleanup, so it runs before it
	t.Cleanup(func() {
		_ = es.DropSchema(context.Background())
	})

	return es
}
