package placestock

import (
	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// Decide always places the copies, a valid Command can not be rejected.
// The history is part of the signature nevertheless: the handler's append is conditional on it.
//
// Business Rules:
//
//	GIVEN: a (book, shelf) pair with or without a stock entry
//	WHEN: PlaceStock command is received
//	THEN: BookCopiesPlacedOnShelf event is generated
func Decide(_ core.DomainEvents, command Command) core.DecisionResult {
	return core.SuccessDecision(
		core.BuildBookCopiesPlacedOnShelf(
			command.BookID,
			command.ShelfID,
			command.Quantity,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for the stock events of one (book, shelf) pair.
func BuildEventFilter(bookID core.BookIDString, shelfID core.ShelfIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.BookCopiesPlacedOnShelfEventType,
			core.BookCopiesTakenFromShelfEventType,
		).
		AndAllPredicatesOf(
			eventstore.P("BookID", bookID),
			eventstore.P("ShelfID", shelfID),
		).
		Finalize()
}
