// Package eventstore provides the engine-agnostic building blocks of an event store
// with dynamic consistency boundaries.
//
// There are no fixed streams. A command handler describes the events that its decision depends on with a Filter,
// queries them, decides, and appends new events on the condition that no event matching the same Filter was
// appended in between:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(core.BookCopiesPlacedOnShelfEventType, core.BookCopiesTakenFromShelfEventType).
//		AndAllPredicatesOf(eventstore.P("BookID", bookID), eventstore.P("ShelfID", shelfID)).
//		Finalize()
//
//	storableEvents, maxSeq, err := es.Query(ctx, filter)
//	// ... decide ...
//	err = es.Append(ctx, filter, maxSeq, storableEvent)
//	if errors.Is(err, eventstore.ErrConcurrencyConflict) {
//		// query again and retry
//	}
//
// Predicates match top-level string values of the JSON payload. Multiple events appended in one call
// are stored atomically with consecutive sequence numbers.
//
// Engines live in sub packages: memoryengine (in process) and postgresengine (PostgreSQL via pgx, database/sql or sqlx).
package eventstore
