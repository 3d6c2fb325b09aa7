package deductstock

import (
	"fmt"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// Decide implements the business logic to determine whether copies can be taken from a shelf.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: a (book, shelf) pair
//	WHEN: DeductStock command is received
//	THEN: BookCopiesTakenFromShelf event is generated
//	ERROR: core.ErrNotFound if copies of the book were never placed on the shelf
//	ERROR: core.InsufficientStockError if the shelf holds fewer copies than requested
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	levels := core.ProjectStockLevels(history)

	if err := CheckDeduction(levels, command.BookID, command.ShelfID, command.Quantity); err != nil {
		return core.ErrorDecision(
			core.BuildTakingBookCopiesFromShelfFailed(
				command.BookID,
				command.ShelfID,
				command.Quantity,
				err.Error(),
				command.OccurredAt,
			),
			err,
		)
	}

	return core.SuccessDecision(
		core.BuildBookCopiesTakenFromShelf(
			command.BookID,
			command.ShelfID,
			command.Quantity,
			"",
			command.OccurredAt,
		),
	)
}

// CheckDeduction returns the error a deduction of quantity copies from the given stock levels would fail with, or nil.
func CheckDeduction(
	levels core.StockLevels,
	bookID core.BookIDString,
	shelfID core.ShelfIDString,
	quantity int,
) error {

	available, exists := levels.Entry(bookID, shelfID)
	if !exists {
		return fmt.Errorf("%w: no stock of book %s on shelf %s", core.ErrNotFound, bookID, shelfID)
	}

	if available < quantity {
		return core.InsufficientStockError{
			BookID:    bookID,
			ShelfID:   shelfID,
			Available: available,
			Requested: quantity,
		}
	}

	return nil
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
