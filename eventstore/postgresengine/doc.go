// Package postgresengine is the PostgreSQL engine of the eventstore.
//
// All events are stored in one append-only table (see EnsureSchema). Query selects the events
// matching a Filter, translating predicates into jsonb containment checks. Append inserts new events
// through a CTE that compares the current max sequence number of the same Filter with the expected one.
// The statement runs in a SERIALIZABLE transaction, so two appends that read the same max sequence number
// can not both commit. PostgreSQL aborts one of them with a serialization failure (SQLSTATE 40001),
// which Append reports as eventstore.ErrConcurrencyConflict.
//
// The engine runs over pgxpool, database/sql (lib/pq) or sqlx:
//
//	pool, _ := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig(dsn))
//	es, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithTableName("events"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//	_ = es.EnsureSchema(ctx)
//
//	storableEvents, maxSeq, _ := es.Query(ctx, filter)
//	err := es.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
