package core

import (
	"time"
)

// BookCopiesPlacedOnShelfEventType is the event type identifier.
const BookCopiesPlacedOnShelfEventType = "BookCopiesPlacedOnShelf"

// BookCopiesPlacedOnShelf records copies of a book put on a shelf. The first one for a (book, shelf) pair
// creates the stock entry.
type BookCopiesPlacedOnShelf struct {
	BookID     BookIDString
	ShelfID    ShelfIDString
	Quantity   int
	OccurredAt OccurredAtTS
}

// BuildBookCopiesPlacedOnShelf creates a new BookCopiesPlacedOnShelf event.
func BuildBookCopiesPlacedOnShelf(
	bookID BookIDString,
	shelfID ShelfIDString,
	quantity int,
	occurredAt time.Time,
) BookCopiesPlacedOnShelf {

	return BookCopiesPlacedOnShelf{
		BookID:     bookID,
		ShelfID:    shelfID,
		Quantity:   quantity,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e BookCopiesPlacedOnShelf) EventType() EventTypeString {
	return BookCopiesPlacedOnShelfEventType
}

func (e BookCopiesPlacedOnShelf) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e BookCopiesPlacedOnShelf) IsErrorEvent() bool {
	return false
}
