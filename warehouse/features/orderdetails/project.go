package orderdetails

import (
	"fmt"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// Project looks up the queried order.
//
// Query Logic:
//
//	GIVEN: the OrderPlaced and OrderFulfilled events of an order
//	WHEN: OrderDetails query is executed
//	THEN: the order with its status and creation time is returned
//	ERROR: core.ErrNotFound if the order was never placed
func Project(history core.DomainEvents, query Query) (OrderDetails, error) {
	order, exists := core.ProjectOrders(history).Get(query.OrderID)
	if !exists {
		return OrderDetails{}, fmt.Errorf("%w: order %s", core.ErrNotFound, query.OrderID)
	}

	return OrderDetails{
		OrderID:   order.OrderID,
		Books:     order.Books,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}, nil
}

// BuildEventFilter creates the filter for the events of one order.
func BuildEventFilter(orderID core.OrderIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.OrderPlacedEventType,
			core.OrderFulfilledEventType,
		).
		AndAnyPredicateOf(eventstore.P("OrderID", orderID)).
		Finalize()
}
