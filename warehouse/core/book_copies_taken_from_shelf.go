package core

import (
	"time"
)

// BookCopiesTakenFromShelfEventType is the event type identifier.
const BookCopiesTakenFromShelfEventType = "BookCopiesTakenFromShelf"

// BookCopiesTakenFromShelf records copies of a book removed from a shelf.
// OrderID is empty for direct deductions and set when the copies fulfill an order.
type BookCopiesTakenFromShelf struct {
	BookID     BookIDString
	ShelfID    ShelfIDString
	Quantity   int
	OrderID    OrderIDString
	OccurredAt OccurredAtTS
}

// BuildBookCopiesTakenFromShelf creates a new BookCopiesTakenFromShelf event.
func BuildBookCopiesTakenFromShelf(
	bookID BookIDString,
	shelfID ShelfIDString,
	quantity int,
	orderID OrderIDString,
	occurredAt time.Time,
) BookCopiesTakenFromShelf {

	return BookCopiesTakenFromShelf{
		BookID:     bookID,
		ShelfID:    shelfID,
		Quantity:   quantity,
		OrderID:    orderID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopiesTakenFromShelf) EventType() EventTypeString {
	return BookCopiesTakenFromShelfEventType
}

func (e BookCopiesTakenFromShelf) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookCopiesTakenFromShelf) IsErrorEvent() bool {
	return false
}
