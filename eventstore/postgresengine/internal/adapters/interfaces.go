package adapters

import "context"

// DBAdapter is what the EventStore needs from a database handle. Queries are complete SQL strings
// with interpolated values, so no placeholders need to be bound.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)

	// ExecSerializable runs the statement in its own SERIALIZABLE transaction and commits it.
	// A serialization failure is returned as ErrSerializationFailure, joined with the driver error.
	ExecSerializable(ctx context.Context, query string) (DBResult, error)
}

// DBRows is the subset of a row cursor the EventStore scans.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// DBResult reports how many rows an Exec inserted.
type DBResult interface {
	RowsAffected() (int64, error)
}
