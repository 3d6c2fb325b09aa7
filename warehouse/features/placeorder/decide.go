package placeorder

import (
	"strconv"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// Decide allocates the next order id and places the order.
//
// Business Rules:
//
//	GIVEN: n orders were placed so far
//	WHEN: PlaceOrder command is received
//	THEN: OrderPlaced event with order id "n+1" and status pending is generated
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	orders := core.ProjectOrders(history)

	return core.SuccessDecision(
		core.BuildOrderPlaced(
			strconv.Itoa(orders.Count()+1),
			command.Books,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for all placed orders, the boundary of the order id sequence.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.OrderPlacedEventType).
		Finalize()
}
