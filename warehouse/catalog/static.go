package catalog

import (
	"context"
)

// Checker is what the catalog decorators wrap.
type Checker interface {
	BookExists(ctx context.Context, bookID string) (bool, error)
}

// StaticCatalog knows the books it was created with.
type StaticCatalog struct {
	books map[string]struct{}
}

// NewStaticCatalog creates a StaticCatalog, empty ids are ignored.
func NewStaticCatalog(bookIDs ...string) StaticCatalog {
	books := make(map[string]struct{}, len(bookIDs))

	for _, bookID := range bookIDs {
		if bookID != "" {
			books[bookID] = struct{}{}
		}
	}

	return StaticCatalog{books: books}
}

// BookExists reports whether the book is one of the catalog's books.
func (c StaticCatalog) BookExists(ctx context.Context, bookID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, exists := c.books[bookID]

	return exists, nil
}
