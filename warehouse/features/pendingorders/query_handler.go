package pendingorders

import (
	"context"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

// QueryHandler orchestrates the query processing workflow.
// It handles event store interactions and delegates projection logic to the pure Project function.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler with the provided EventStore dependency.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

// Handle executes the query processing workflow: Query -> Unmarshal -> Project.
func (h QueryHandler) Handle(ctx context.Context, query Query) (PendingOrders, error) {
	filter := BuildEventFilter()

	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, _, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return PendingOrders{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return PendingOrders{}, err
	}

	return Project(history, query), nil
}
