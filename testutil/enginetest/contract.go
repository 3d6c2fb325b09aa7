// Package enginetest holds the behaviour every eventstore engine must show, as a reusable test suite.
package enginetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

// EventStore is the engine contract under test.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Factory returns an empty EventStore for one subtest.
type Factory func(t *testing.T) EventStore

// RunContractTests runs the engine contract against stores built by newEventStore.
func RunContractTests(t *testing.T, newEventStore Factory) {
	t.Run("query_on_empty_store_returns_nothing", func(t *testing.T) {
		queryOnEmptyStore(t, newEventStore(t))
	})

	t.Run("append_then_query_by_type_and_all_predicates", func(t *testing.T) {
		appendThenQueryByTypeAndAllPredicates(t, newEventStore(t))
	})

	t.Run("append_with_stale_sequence_conflicts", func(t *testing.T) {
		appendWithStaleSequenceConflicts(t, newEventStore(t))
	})

	t.Run("unrelated_appends_do_not_conflict", func(t *testing.T) {
		unrelatedAppendsDoNotConflict(t, newEventStore(t))
	})

	t.Run("multiple_events_are_appended_atomically", func(t *testing.T) {
		multipleEventsAreAppendedAtomically(t, newEventStore(t))
	})

	t.Run("or_filter_and_any_predicate", func(t *testing.T) {
		orFilterAndAnyPredicate(t, newEventStore(t))
	})

	t.Run("concurrent_appends_on_one_boundary_admit_exactly_one", func(t *testing.T) {
		concurrentAppendsAdmitExactlyOne(t, newEventStore(t))
	})
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	return ctx
}

func stockEvent(t *testing.T, eventType, bookID, shelfID string, quantity int) eventstore.StorableEvent {
	t.Helper()

	payload := fmt.Sprintf(`{"BookID":%q,"ShelfID":%q,"Quantity":%d}`, bookID, shelfID, quantity)
	event, err := eventstore.BuildStorableEvent(
		eventType,
		time.Now().UTC().Truncate(time.Microsecond),
		[]byte(payload),
		[]byte(`{"MessageID":"m"}`),
	)
	require.NoError(t, err)

	return event
}

func stockFilter(bookID, shelfID string) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopiesPlacedOnShelf", "BookCopiesTakenFromShelf").
		AndAllPredicatesOf(eventstore.P("BookID", bookID), eventstore.P("ShelfID", shelfID)).
		Finalize()
}

func queryOnEmptyStore(t *testing.T, es EventStore) {
	// act
	events, maxSeq, err := es.Query(testContext(t), eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(0), maxSeq)
}

func appendThenQueryByTypeAndAllPredicates(t *testing.T, es EventStore) {
	// setup
	ctx := testContext(t)
	filter := stockFilter("book-1", "A1")

	// arrange
	placed := stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "A1", 5)
	require.NoError(t, es.Append(ctx, filter, 0, placed))
	otherShelf := stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "B1", 3)
	require.NoError(t, es.Append(ctx, stockFilter("book-1", "B1"), 0, otherShelf))

	// act
	events, maxSeq, err := es.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "BookCopiesPlacedOnShelf", events[0].EventType)
	assert.JSONEq(t, string(placed.PayloadJSON), string(events[0].PayloadJSON))
	assert.True(t, placed.OccurredAt.Equal(events[0].OccurredAt))
	assert.Positive(t, maxSeq)
}

func appendWithStaleSequenceConflicts(t *testing.T, es EventStore) {
	// setup
	ctx := testContext(t)
	filter := stockFilter("book-1", "A1")

	// arrange
	require.NoError(t, es.Append(ctx, filter, 0, stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "A1", 5)))

	// act
	err := es.Append(ctx, filter, 0, stockEvent(t, "BookCopiesTakenFromShelf", "book-1", "A1", 1))

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	events, _, queryErr := es.Query(ctx, filter)
	require.NoError(t, queryErr)
	assert.Len(t, events, 1)
}

func unrelatedAppendsDoNotConflict(t *testing.T, es EventStore) {
	// setup
	ctx := testContext(t)
	filterA1 := stockFilter("book-1", "A1")

	// arrange
	_, maxSeq, err := es.Query(ctx, filterA1)
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, stockFilter("book-1", "B1"), 0, stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "B1", 1)))

	// act
	appendErr := es.Append(ctx, filterA1, maxSeq, stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "A1", 1))

	// assert
	assert.NoError(t, appendErr)
}

func multipleEventsAreAppendedAtomically(t *testing.T, es EventStore) {
	// setup
	ctx := testContext(t)
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopiesPlacedOnShelf", "BookCopiesTakenFromShelf").
		AndAnyPredicateOf(eventstore.P("BookID", "book-1")).
		Finalize()

	// arrange
	first := stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "A1", 1)
	second := stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "B1", 2)
	third := stockEvent(t, "BookCopiesTakenFromShelf", "book-1", "A1", 1)

	// act
	err := es.Append(ctx, filter, 0, first, second, third)
	conflictErr := es.Append(ctx, filter, 0, first, second)

	// assert
	require.NoError(t, err)
	assert.ErrorIs(t, conflictErr, eventstore.ErrConcurrencyConflict)

	events, _, queryErr := es.Query(ctx, filter)
	require.NoError(t, queryErr)
	require.Len(t, events, 3)
	assert.JSONEq(t, string(first.PayloadJSON), string(events[0].PayloadJSON))
	assert.JSONEq(t, string(second.PayloadJSON), string(events[1].PayloadJSON))
	assert.Equal(t, "BookCopiesTakenFromShelf", events[2].EventType)
}

func orFilterAndAnyPredicate(t *testing.T, es EventStore) {
	// setup
	ctx := testContext(t)

	// arrange
	require.NoError(t, es.Append(ctx, stockFilter("book-1", "A1"), 0, stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "A1", 1)))
	require.NoError(t, es.Append(ctx, stockFilter("book-2", "A1"), 0, stockEvent(t, "BookCopiesPlacedOnShelf", "book-2", "A1", 1)))
	require.NoError(t, es.Append(ctx, stockFilter("book-3", "C1"), 0, stockEvent(t, "BookCopiesTakenFromShelf", "book-3", "C1", 1)))

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopiesPlacedOnShelf").
		AndAnyPredicateOf(eventstore.P("BookID", "book-1"), eventstore.P("BookID", "book-2")).
		OrMatching().
		AnyPredicateOf(eventstore.P("ShelfID", "C1")).
		Finalize()

	// act
	events, _, err := es.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func concurrentAppendsAdmitExactlyOne(t *testing.T, es EventStore) {
	// setup
	ctx := testContext(t)
	filter := stockFilter("book-1", "A1")
	workers := 8

	// arrange
	_, maxSeq, err := es.Query(ctx, filter)
	require.NoError(t, err)
	event := stockEvent(t, "BookCopiesPlacedOnShelf", "book-1", "A1", 1)

	// act
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- es.Append(ctx, filter, maxSeq, event)
		}()
	}

	wg.Wait()
	close(results)

	// assert
	succeeded := 0
	for appendErr := range results {
		if appendErr == nil {
			succeeded++
			continue
		}

		assert.ErrorIs(t, appendErr, eventstore.ErrConcurrencyConflict)
	}

	assert.Equal(t, 1, succeeded)
}
