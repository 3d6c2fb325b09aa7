package orderdetails

import (
	"context"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

// Handle executes the query processing workflow.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OrderDetails, error) {
	filter := BuildEventFilter(query.OrderID)

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, _, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return OrderDetails{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return OrderDetails{}, err
	}

	return Project(history, query)
}
