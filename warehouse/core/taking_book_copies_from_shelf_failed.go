package core

import (
	"time"
)

// TakingBookCopiesFromShelfFailedEventType is the event type identifier.
const TakingBookCopiesFromShelfFailedEventType = "TakingBookCopiesFromShelfFailed"

// TakingBookCopiesFromShelfFailed records a rejected deduction.
type TakingBookCopiesFromShelfFailed struct {
	BookID      BookIDString
	ShelfID     ShelfIDString
	Quantity    int
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildTakingBookCopiesFromShelfFailed creates a new TakingBookCopiesFromShelfFailed event.
func BuildTakingBookCopiesFromShelfFailed(
	bookID BookIDString,
	shelfID ShelfIDString,
	quantity int,
	failureInfo string,
	occurredAt time.Time,
) TakingBookCopiesFromShelfFailed {

	return TakingBookCopiesFromShelfFailed{
		BookID:      bookID,
		ShelfID:     shelfID,
		Quantity:    quantity,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e TakingBookCopiesFromShelfFailed) EventType() EventTypeString {
	return TakingBookCopiesFromShelfFailedEventType
}

func (e TakingBookCopiesFromShelfFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

func (e TakingBookCopiesFromShelfFailed) IsErrorEvent() bool {
	return true
}
