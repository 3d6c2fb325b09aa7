package config

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver for the catalog
)

// SQLDriverName maps a catalog driver setting to the database/sql driver name.
func SQLDriverName(catalogDriver string) string {
	if catalogDriver == CatalogDriverSQLite {
		return "sqlite"
	}

	return "postgres"
}

// PostgresSQLX opens and pings a *sqlx.DB (lib/pq) for the given DSN.
func PostgresSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	return openSQLX(ctx, "postgres", dsn, 50)
}

// CatalogSQLX opens and pings the catalog database. SQLite allows one writer, so its pool has a single connection.
func CatalogSQLX(ctx context.Context, catalogDriver, dsn string) (*sqlx.DB, error) {
	maxOpenConnections := 10
	if catalogDriver == CatalogDriverSQLite {
		maxOpenConnections = 1
	}

	return openSQLX(ctx, SQLDriverName(catalogDriver), dsn, maxOpenConnections)
}

func openSQLX(ctx context.Context, driverName, dsn string, maxOpenConnections int) (*sqlx.DB, error) {
	const defaultMaxConnLifetime = time.Hour
	const defaultMaxConnIdleTime = time.Minute * 5

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConnections)
	db.SetMaxIdleConns(min(maxOpenConnections, 10))
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}
