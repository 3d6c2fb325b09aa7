package placeorder

import (
	"maps"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

const (
	commandType = "PlaceOrder"
)

// Command represents the intent to order copies of books.
// Books holds the requested quantity per book, aggregated from the requested book ids.
type Command struct {
	Books      map[core.BookIDString]int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand aggregates the requested book ids into quantities, duplicate ids sum up.
func BuildCommand(bookIDs []core.BookIDString, occurredAt time.Time) (Command, error) {
	if len(bookIDs) == 0 {
		return Command{}, core.InvalidArgument("an order needs at least one book")
	}

	books := make(map[core.BookIDString]int, len(bookIDs))

	for _, bookID := range bookIDs {
		if bookID == "" {
			return Command{}, core.InvalidArgument("book id must not be empty")
		}

		books[bookID]++
	}

	return Command{
		Books:      books,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}, nil
}

// BuildCommandFromQuantities takes the requested quantity per book as it is. Every quantity must be positive.
func BuildCommandFromQuantities(books map[core.BookIDString]int, occurredAt time.Time) (Command, error) {
	if len(books) == 0 {
		return Command{}, core.InvalidArgument("an order needs at least one book")
	}

	for bookID, quantity := range books {
		if bookID == "" {
			return Command{}, core.InvalidArgument("book id must not be empty")
		}

		if quantity <= 0 {
			return Command{}, core.InvalidArgument("quantity of book " + bookID + " must be positive")
		}
	}

	return Command{
		Books:      maps.Clone(books),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}, nil
}
