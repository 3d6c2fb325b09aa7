// Command catalog-import loads books from a CSV file into the SQL book catalog of the warehouse configuration.
//
// The file has the columns id, title and author, an optional header row starts with "id".
// Books that are already in the catalog are kept as they are.
//
//	WAREHOUSE_CATALOG=sql WAREHOUSE_CATALOG_DSN=catalog.db catalog-import -file books.csv
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/internal/bootstrap"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/catalog"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

// ErrCatalogNotSQL is returned when the configuration does not select the SQL catalog.
var ErrCatalogNotSQL = errors.New("catalog-import needs WAREHOUSE_CATALOG=sql")

// bookWriter is where imported books go.
type bookWriter interface {
	AddBook(ctx context.Context, book catalog.Book) error
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("catalog import failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := flag.NewFlagSet("catalog-import", flag.ContinueOnError)
	file := flags.String("file", "books.csv", "CSV file with the columns id,title,author")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.Catalog != config.CatalogSQL {
		return ErrCatalogNotSQL
	}

	source, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer source.Close()

	ctx := context.Background()

	var closers bootstrap.Closers
	defer closers.Close()

	sqlCatalog, err := bootstrap.OpenSQLCatalog(ctx, cfg, &closers)
	if err != nil {
		return fmt.Errorf("opening book catalog: %w", err)
	}

	start := time.Now()

	imported, err := importBooks(ctx, source, sqlCatalog)
	if err != nil {
		return err
	}

	slog.Info("catalog import finished", "file", *file, "books", imported, "duration", time.Since(start).String())

	return nil
}

// importBooks adds every row of the CSV to writer and returns the number of rows added.
func importBooks(ctx context.Context, source io.Reader, writer bookWriter) (int, error) {
	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	imported := 0
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return imported, nil
		}

		if err != nil {
			return imported, fmt.Errorf("reading line %d: %w", line, err)
		}

		if line == 1 && strings.EqualFold(strings.TrimSpace(record[0]), "id") {
			continue
		}

		book := catalog.Book{ID: strings.TrimSpace(record[0])}
		if len(record) > 1 {
			book.Title = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			book.Author = strings.TrimSpace(record[2])
		}

		if err = writer.AddBook(ctx, book); err != nil {
			return imported, fmt.Errorf("importing line %d: %w", line, err)
		}

		imported++
	}
}
