package findonshelf

import (
	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// Project lists the shelves holding the queried book.
//
// Query Logic:
//
//	GIVEN: placements and deductions of a book on any number of shelves
//	WHEN: FindOnShelf query is executed
//	THEN: every shelf with a positive count is returned with its count
//	EXCLUDES: shelves whose count dropped to zero
func Project(history core.DomainEvents, query Query) BookLocations {
	holding := core.ProjectStockLevels(history).ShelvesHolding(query.BookID)

	shelves := make([]ShelfStock, 0, len(holding))
	for _, shelf := range holding {
		shelves = append(shelves, ShelfStock{ShelfID: shelf.ShelfID, Count: shelf.Count})
	}

	return BookLocations{
		BookID:  query.BookID,
		Shelves: shelves,
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
