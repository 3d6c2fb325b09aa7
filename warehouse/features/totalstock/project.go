package totalstock

import (
	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// Project sums up the stock of the queried book.
//
// Query Logic:
//
//	GIVEN: placements and deductions of a book on any number of shelves
//	WHEN: TotalStock query is executed
//	THEN: the sum of placed minus taken copies is returned, 0 if there are none
func Project(history core.DomainEvents, query Query) TotalStock {
	return TotalStock{
		BookID: query.BookID,
		Stock:  core.ProjectStockLevels(history).TotalFor(query.BookID),
	}
}

// BuildEventFilter creates the filter for the stock events of the book on every shelf.
func BuildEventFilter(bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopiesPlacedOnShelfEventType,
			core.BookCopiesTakenFromShelfEventType,
		).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}
