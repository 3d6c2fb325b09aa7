package core

import (
	"maps"
	"time"
)

// OrderPlacedEventType is the event type identifier.
const OrderPlacedEventType = "OrderPlaced"

// OrderPlaced records a new pending order. Its OccurredAt is the creation time of the order.
type OrderPlaced struct {
	OrderID    OrderIDString
	Books      map[BookIDString]int
	OccurredAt OccurredAtTS
}

// BuildOrderPlaced creates a new OrderPlaced event.
func BuildOrderPlaced(orderID OrderIDString, books map[BookIDString]int, occurredAt time.Time) OrderPlaced {
	return OrderPlaced{
		OrderID:    orderID,
		Books:      maps.Clone(books),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e OrderPlaced) EventType() EventTypeString {
	return OrderPlacedEventType
}

func (e OrderPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e OrderPlaced) IsErrorEvent() bool {
	return false
}
