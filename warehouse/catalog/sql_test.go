package catalog_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/catalog"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

func newSQLiteCatalog(t *testing.T) *catalog.SQLCatalog {
	t.Helper()

	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "catalog.db")

	db, err := config.CatalogSQLX(ctx, config.CatalogDriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	books, err := catalog.NewSQLCatalog(db)
	require.NoError(t, err)
	require.NoError(t, books.EnsureSchema(ctx))

	return books
}

func Test_SQLCatalog_BookExists(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := newSQLiteCatalog(t)
	require.NoError(t, books.AddBook(ctx, catalog.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert"}))

	// act
	b1Exists, err1 := books.BookExists(ctx, "b1")
	b2Exists, err2 := books.BookExists(ctx, "b2")

	// assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.True(t, b1Exists)
	assert.False(t, b2Exists)
}

func Test_SQLCatalog_AddBook_KeepsExistingRow(t *testing.T) {
	// arrange
	ctx := context.Background()
	books := newSQLiteCatalog(t)
	require.NoError(t, books.AddBook(ctx, catalog.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert"}))

	// act
	err := books.AddBook(ctx, catalog.Book{ID: "b1", Title: "Other"})

	// assert
	require.NoError(t, err)
	book, found, getErr := books.GetBook(ctx, "b1")
	require.NoError(t, getErr)
	assert.True(t, found)
	assert.Equal(t, catalog.Book{ID: "b1", Title: "Dune", Author: "Frank Herbert"}, book)
}

func Test_SQLCatalog_GetBook_Unknown(t *testing.T) {
	// act
	_, found, err := newSQLiteCatalog(t).GetBook(context.Background(), "nope")

	// assert
	require.NoError(t, err)
	assert.False(t, found)
}

func Test_SQLCatalog_EnsureSchema_IsIdempotent(t *testing.T) {
	books := newSQLiteCatalog(t)

	assert.NoError(t, books.EnsureSchema(context.Background()))
}

func Test_SQLCatalog_Validation(t *testing.T) {
	_, err := catalog.NewSQLCatalog(nil)
	assert.ErrorIs(t, err, catalog.ErrNilDB)

	err = newSQLiteCatalog(t).AddBook(context.Background(), catalog.Book{Title: "No id"})
	assert.ErrorIs(t, err, catalog.ErrEmptyBookID)
}

func Test_SQLCatalog_WithTableName(t *testing.T) {
	// arrange
	ctx := context.Background()
	db, err := config.CatalogSQLX(ctx, config.CatalogDriverSQLite, filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	books, err := catalog.NewSQLCatalog(db, catalog.WithTableName("catalog_books"))
	require.NoError(t, err)
	require.NoError(t, books.EnsureSchema(ctx))

	// act
	require.NoError(t, books.AddBook(ctx, catalog.Book{ID: "b7"}))
	exists, existsErr := books.BookExists(ctx, "b7")

	// assert
	require.NoError(t, existsErr)
	assert.True(t, exists)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, "SELECT COUNT(*) FROM catalog_books"))
	assert.Equal(t, 1, count)
}
