package totalstock

import (
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

const (
	queryType = "TotalStock"
)

// Query represents the intent to query the total stock of a book.
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
