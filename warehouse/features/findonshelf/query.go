package findonshelf

import (
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

const (
	queryType = "FindOnShelf"
)

// Query represents the intent to find the shelves holding a book.
type Query struct {
	BookID core.BookIDString
}

// BuildQuery creates a new Query with the provided book ID.
func BuildQuery(bookID core.BookIDString) (Query, error) {
	if bookID == "" {
		return Query{}, core.InvalidArgument("book id must not be empty")
	}

	return Query{BookID: bookID}, nil
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
