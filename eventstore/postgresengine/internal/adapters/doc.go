// Package adapters wraps pgxpool.Pool, sql.DB and sqlx.DB behind the DBAdapter interface,
// so the EventStore runs the same SQL over any of them.
package adapters
