package core

import (
	"slices"
	"time"
)

// OrderFulfilledEventType is the event type identifier.
const OrderFulfilledEventType = "OrderFulfilled"

// FulfillmentLine is one instruction to take copies of a book from a shelf for an order.
type FulfillmentLine struct {
	BookID   BookIDString
	ShelfID  ShelfIDString
	Quantity int
}

// OrderFulfilled records the terminal transition of an order. It is appended together with
// one BookCopiesTakenFromShelf event per line.
type OrderFulfilled struct {
	OrderID      OrderIDString
	Fulfillments []FulfillmentLine
	OccurredAt   OccurredAtTS
}

// BuildOrderFulfilled creates a new OrderFulfilled event.
func BuildOrderFulfilled(orderID OrderIDString, fulfillments []FulfillmentLine, occurredAt time.Time) OrderFulfilled {
	lines := slices.Clone(fulfillments)
	if lines == nil {
		lines = []FulfillmentLine{}
	}

	return OrderFulfilled{
		OrderID:      orderID,
		Fulfillments: lines,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

func (e OrderFulfilled) EventType() EventTypeString {
	return OrderFulfilledEventType
}

func (e OrderFulfilled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e OrderFulfilled) IsErrorEvent() bool {
	return false
}
