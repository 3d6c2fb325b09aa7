package deductstock

import (
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

const (
	commandType = "DeductStock"
)

// Command represents the intent to take copies of a book from a shelf.
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

	if err := ValidateLine(bookID, shelfID, quantity); err != nil {
		return Command{}, err
	}

	return Command{
		BookID:     bookID,
		ShelfID:    shelfID,
		Quantity:   quantity,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}, nil
}

// ValidateLine checks the arguments of one deduction.
func ValidateLine(bookID core.BookIDString, shelfID core.ShelfIDString, quantity int) error {
	if bookID == "" {
		return core.InvalidArgument("book id must not be empty")
	}

	if shelfID == "" {
		return core.InvalidArgument("shelf id must not be empty")
	}

	if quantity <= 0 {
		return core.InvalidArgument("quantity must be a positive integer")
	}

	return nil
}
