package fulfillorder

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/deductstock"
)

const (
	commandType = "FulfillOrder"
)

// Command represents the intent to fulfill an order with copies taken from the given shelves.
type Command struct {
	OrderID    core.OrderIDString
	Lines      []core.FulfillmentLine
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand validates the order id and every line. An empty list of lines is valid.
func BuildCommand(orderID core.OrderIDString, lines []core.FulfillmentLine, occurredAt time.Time) (Command, error) {
	if orderID == "" {
		return Command{}, core.InvalidArgument("order id must not be empty")
	}

	for _, line := range lines {
		if err := deductstock.ValidateLine(line.BookID, line.ShelfID, line.Quantity); err != nil {
			return Command{}, err
		}
	}

	return Command{
		OrderID:    orderID,
		Lines:      slices.Clone(lines),
		OccurredAt: core.ToOccurredAt(occurredAt),
	}, nil
}
