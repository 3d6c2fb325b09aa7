package totalstock

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
func (h QueryHandler) Handle(ctx context.Context, query Query) (TotalStock, error) {
	filter := BuildEventFilter(query.BookID)

	// Pure query handlers tolerate slightly stale data, a replica may serve them
	ctx = eventstore.WithEventualConsistency(ctx)

	storableEvents, _, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return TotalStock{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return TotalStock{}, err
	}

	return Project(history, query), nil
}
