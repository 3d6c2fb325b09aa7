package bootstrap

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/catalog"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/ordermanager"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

// OpenCatalog builds the catalog selected by cfg.Catalog behind an LRU cache.
// The configured book ids are the whole static catalog, and are seeded into the SQL catalog.
func OpenCatalog(ctx context.Context, cfg config.Config, closers *Closers) (ordermanager.BookCatalog, error) {
	var inner catalog.Checker

	switch cfg.Catalog {
	case config.CatalogStatic:
		inner = catalog.NewStaticCatalog(cfg.CatalogBooks...)

	case config.CatalogSQL:
		sqlCatalog, err := openSQLCatalog(ctx, cfg, closers)
		if err != nil {
			return nil, err
		}

		inner = sqlCatalog

	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedCatalog, cfg.Catalog)
	}

	cached, err := catalog.NewCachedCatalog(inner, cfg.CatalogCacheSize)
	if err != nil {
		return nil, err
	}

	return cached, nil
}

// OpenSQLCatalog opens the SQL catalog of cfg with its schema ensured, without seeding and caching.
func OpenSQLCatalog(ctx context.Context, cfg config.Config, closers *Closers) (*catalog.SQLCatalog, error) {
	db, err := config.CatalogSQLX(ctx, cfg.CatalogDriver, cfg.CatalogDSN)
	if err != nil {
		return nil, err
	}
	closers.Add(func() { _ = db.Close() })

	sqlCatalog, err := catalog.NewSQLCatalog(db)
	if err != nil {
		return nil, err
	}

	if err = sqlCatalog.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	return sqlCatalog, nil
}

func openSQLCatalog(ctx context.Context, cfg config.Config, closers *Closers) (*catalog.SQLCatalog, error) {
	sqlCatalog, err := OpenSQLCatalog(ctx, cfg, closers)
	if err != nil {
		return nil, err
	}

	for _, bookID := range cfg.CatalogBooks {
		if err = sqlCatalog.AddBook(ctx, catalog.Book{ID: bookID}); err != nil {
			return nil, err
		}
	}

	return sqlCatalog, nil
}
