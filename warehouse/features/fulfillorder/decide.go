package fulfillorder

import (
	"fmt"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/deductstock"
)

// Decide implements the business logic to determine whether an order can be fulfilled with the given lines.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: an order and the stock of every (book, shelf) pair the lines reference
//	WHEN: FulfillOrder command is received
//	THEN: one BookCopiesTakenFromShelf event per line and an OrderFulfilled event are generated
//	ERROR: core.ErrNotFound if the order was never placed
//	ERROR: core.ErrAlreadyFulfilled if the order was fulfilled before
//	ERROR: core.ErrNotFound if a line's shelf never held the book
//	ERROR: core.InsufficientStockError if a line requests more copies than are left after the previous lines
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	order, exists := core.ProjectOrders(history).Get(command.OrderID)
	if !exists {
		return reject(command, fmt.Errorf("%w: order %s", core.ErrNotFound, command.OrderID))
	}

	if order.IsFulfilled() {
		return reject(command, fmt.Errorf("%w: order %s", core.ErrAlreadyFulfilled, command.OrderID))
	}

	levels := core.ProjectStockLevels(history)
	events := make(core.DomainEvents, 0, len(command.Lines)+1)

	for _, line := range command.Lines {
		if err := deductstock.CheckDeduction(levels, line.BookID, line.ShelfID, line.Quantity); err != nil {
			return reject(command, err)
		}

		levels.Take(line.BookID, line.ShelfID, line.Quantity)

		events = append(
			events,
			core.BuildBookCopiesTakenFromShelf(line.BookID, line.ShelfID, line.Quantity, command.OrderID, command.OccurredAt),
		)
	}

	events = append(events, core.BuildOrderFulfilled(command.OrderID, command.Lines, command.OccurredAt))

	return core.SuccessDecision(events[0], events[1:]...)
}

func reject(command Command, err error) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildFulfillingOrderFailed(command.OrderID, err.Error(), command.OccurredAt),
		err,
	)
}

// BuildEventFilter creates the filter for the events of the order joined with the stock events
// of every (book, shelf) pair the lines reference.
func BuildEventFilter(orderID core.OrderIDString, lines []core.FulfillmentLine) eventstore.Filter {
	builder := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.OrderPlacedEventType,
			core.OrderFulfilledEventType,
		).
		AndAnyPredicateOf(eventstore.P("OrderID", orderID))

	seen := make(map[core.StockKey]bool, len(lines))

	for _, line := range lines {
		key := core.StockKey{BookID: line.BookID, ShelfID: line.ShelfID}
		if seen[key] {
			continue
		}

		seen[key] = true

		builder = builder.
			OrMatching().
			AnyEventTypeOf(
				core.BookCopiesPlacedOnShelfEventType,
				core.BookCopiesTakenFromShelfEventType,
			).
			AndAllPredicatesOf(
				eventstore.P("BookID", line.BookID),
				eventstore.P("ShelfID", line.ShelfID),
			)
	}

	return builder.Finalize()
}
