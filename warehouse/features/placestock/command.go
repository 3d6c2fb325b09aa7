package placestock

import (
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

const (
	commandType = "PlaceStock"
)

// Command represents the intent to put copies of a book on a shelf.
type Command struct {
	BookID     core.BookIDString
	ShelfID    core.ShelfIDString
	Quantity   int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand validates the input and creates a new Command.
func BuildCommand(
	bookID core.BookIDString,
	shelfID core.ShelfIDString,
	quantity int,
	occurredAt time.Time,
) (Command, error) {

	if bookID == "" {
		return Command{}, core.InvalidArgument("book id must not be empty")
	}

	if shelfID == "" {
		return Command{}, core.InvalidArgument("shelf id must not be empty")
	}

	if quantity <= 0 {
		return Command{}, core.InvalidArgument("quantity must be a positive integer")
	}

	return Command{
		BookID:     bookID,
		ShelfID:    shelfID,
		Quantity:   quantity,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}, nil
}
