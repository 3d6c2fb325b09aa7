package pendingorders

import (
	"slices"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

// Project builds the fulfillment queue.
//
// Query Logic:
//
//	GIVEN: all placed and fulfilled orders
//	WHEN: PendingOrders query is executed
//	THEN: the pending orders are returned, sorted by creation time ascending
//	EXCLUDES: fulfilled orders
func Project(history core.DomainEvents, _ Query) PendingOrders {
	pending := slices.DeleteFunc(core.ProjectOrders(history).InPlacementOrder(), core.Order.IsFulfilled)

	// stable, so equal creation times keep the placement order
	slices.SortStableFunc(pending, func(a, b core.Order) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	orders := make([]PendingOrder, 0, len(pending))
	for _, order := range pending {
		orders = append(orders, PendingOrder{OrderID: order.OrderID, Books: order.Books})
	}

	return PendingOrders{
		Orders: orders,
		Count:  len(orders),
	}
}

// BuildEventFilter creates the filter for the events of all orders.
func BuildEventFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(
			core.OrderPlacedEventType,
			core.OrderFulfilledEventType,
		).
		Finalize()
}
