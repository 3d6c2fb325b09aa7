package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jmoiron/sqlx"
)

const (
	defaultTableName = "books"

	colID     = "id"
	colTitle  = "title"
	colAuthor = "author"

	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

var (
	// ErrNilDB is returned by NewSQLCatalog without a database handle.
	ErrNilDB = errors.New("database handle must not be nil")

	// ErrEmptyBookID is returned by AddBook for a book without id.
	ErrEmptyBookID = errors.New("book id must not be empty")

	// ErrBuildingQueryFailed is joined with the goqu error when a statement can not be built.
	ErrBuildingQueryFailed = errors.New("building catalog query failed")

	// ErrQueryingCatalogFailed is joined with the database error of a lookup.
	ErrQueryingCatalogFailed = errors.New("querying catalog failed")

	// ErrWritingCatalogFailed is joined with the database error of a write.
	ErrWritingCatalogFailed = errors.New("writing catalog failed")
)

// Book is a row of the books table. Title and author are informational only.
type Book struct {
	ID     string `db:"id"`
	Title  string `db:"title"`
	Author string `db:"author"`
}

// SQLCatalog looks up books in a table with the columns id, title and author.
type SQLCatalog struct {
	db        *sqlx.DB
	dialect   goqu.DialectWrapper
	tableName string
}

// SQLOption configures a SQLCatalog.
type SQLOption func(*SQLCatalog)

// WithTableName sets the name of the books table.
func WithTableName(tableName string) SQLOption {
	return func(c *SQLCatalog) {
		if tableName != "" {
			c.tableName = tableName
		}
	}
}

// NewSQLCatalog creates a SQLCatalog. The SQL dialect follows the driver of db: "sqlite" or else PostgreSQL.
func NewSQLCatalog(db *sqlx.DB, opts ...SQLOption) (*SQLCatalog, error) {
	if db == nil {
		return nil, ErrNilDB
	}

	dialect := dialectPostgres
	if db.DriverName() == "sqlite" {
		dialect = dialectSQLite
	}

	c := &SQLCatalog{
		db:        db,
		dialect:   goqu.Dialect(dialect),
		tableName: defaultTableName,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// EnsureSchema creates the books table if it does not exist. The statement is valid in PostgreSQL and SQLite.
func (c *SQLCatalog) EnsureSchema(ctx context.Context) error {
	ddl := `CREATE TABLE IF NOT EXISTS ` + c.tableName + ` (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		author TEXT NOT NULL DEFAULT ''
	)`

	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return errors.Join(ErrWritingCatalogFailed, err)
	}

	return nil
}

// AddBook inserts the book, an existing id is left as it is.
func (c *SQLCatalog) AddBook(ctx context.Context, book Book) error {
	if book.ID == "" {
		return ErrEmptyBookID
	}

	insertStmt, args, err := c.dialect.
		Insert(c.tableName).
		Rows(goqu.Record{colID: book.ID, colTitle: book.Title, colAuthor: book.Author}).
		OnConflict(goqu.DoNothing()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return errors.Join(ErrBuildingQueryFailed, err)
	}

	if _, err = c.db.ExecContext(ctx, insertStmt, args...); err != nil {
		return errors.Join(ErrWritingCatalogFailed, err)
	}

	return nil
}

// GetBook returns the book and whether it exists.
func (c *SQLCatalog) GetBook(ctx context.Context, bookID string) (Book, bool, error) {
	selectStmt, args, err := c.dialect.
		From(c.tableName).
		Select(colID, colTitle, colAuthor).
		Where(goqu.C(colID).Eq(bookID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, false, errors.Join(ErrBuildingQueryFailed, err)
	}

	var book Book

	err = c.db.GetContext(ctx, &book, selectStmt, args...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Book{}, false, nil
	case err != nil:
		return Book{}, false, errors.Join(ErrQueryingCatalogFailed, err)
	}

	return book, true, nil
}

// BookExists reports whether the books table has a row with the id.
func (c *SQLCatalog) BookExists(ctx context.Context, bookID string) (bool, error) {
	selectStmt, args, err := c.dialect.
		From(c.tableName).
		Select(goqu.L("1")).
		Where(goqu.C(colID).Eq(bookID)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, errors.Join(ErrBuildingQueryFailed, err)
	}

	var one int

	err = c.db.QueryRowxContext(ctx, selectStmt, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, errors.Join(ErrQueryingCatalogFailed, err)
	}

	return true, nil
}
