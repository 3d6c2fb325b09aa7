package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/book-warehouse-go/testutil/enginetest"
	"github.com/AntonStoeckl/book-warehouse-go/testutil/eventstorewrapper"
	"github.com/AntonStoeckl/book-warehouse-go/testutil/observability"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

// These tests need a PostgreSQL database, they are skipped unless WAREHOUSE_TEST_POSTGRES_DSN is set.

func Test_PostgresEngine_Contract(t *testing.T) {
	for _, adapterType := range []string{config.StoragePGXPool, config.StorageSQLDB, config.StorageSQLXDB} {
		t.Run(adapterType, func(t *testing.T) {
			enginetest.RunContractTests(t, func(t *testing.T) enginetest.EventStore {
				return eventstorewrapper.NewPostgres(t, adapterType)
			})
		})
	}
}

func Test_PostgresEngine_ReportsObservability(t *testing.T) {
	// arrange
	metrics := observability.NewMetricsCollectorSpy()
	tracing := observability.NewTracingCollectorSpy()
	logger := observability.NewLoggerSpy()

	es := eventstorewrapper.NewPostgres(
		t,
		config.StoragePGXPool,
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
		postgresengine.WithContextualLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopiesPlacedOnShelf").
		AndAllPredicatesOf(eventstore.P("BookID", "book-1"), eventstore.P("ShelfID", "A1")).
		Finalize()

	event, err := eventstore.BuildStorableEvent(
		"BookCopiesPlacedOnShelf",
		time.Now().UTC(),
		[]byte(`{"BookID":"book-1","ShelfID":"A1","Quantity":2}`),
		[]byte(`{"MessageID":"m-1"}`),
	)
	require.NoError(t, err)

	// act
	_, maxSeq, queryErr := es.Query(ctx, filter)
	appendErr := es.Append(ctx, filter, maxSeq, event)
	conflictErr := es.Append(ctx, filter, maxSeq, event)

	// assert
	require.NoError(t, queryErr)
	require.NoError(t, appendErr)
	assert.ErrorIs(t, conflictErr, eventstore.ErrConcurrencyConflict)

	assert.True(t, metrics.HasDurationRecordForMetric("eventstore_query_duration_seconds").
		WithOperation("query").WithStatus("success").Assert())
	assert.True(t, metrics.HasDurationRecordForMetric("eventstore_append_duration_seconds").
		WithOperation("append").WithStatus("success").Assert())
	assert.True(t, metrics.HasCounterRecordForMetric("eventstore_concurrency_conflicts_total").
		WithOperation("append").Assert())

	querySpan, found := tracing.FinishedSpan("eventstore.query")
	require.True(t, found)
	assert.Equal(t, "success", querySpan.Status)

	assert.True(t, logger.HasInfoLog("eventstore operation: events appended"))
	assert.True(t, logger.HasInfoLog("eventstore operation: concurrency conflict detected"))
}

func Test_PostgresEngine_TruncateRemovesAllEvents(t *testing.T) {
	// arrange
	es := eventstorewrapper.NewPostgres(t, config.StorageSQLXDB)
	ctx := context.Background()
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	event, err := eventstore.BuildStorableEvent(
		"OrderPlaced",
		time.Now().UTC(),
		[]byte(`{"OrderID":"o-1"}`),
		[]byte(`{"MessageID":"m-1"}`),
	)
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, filter, 0, event))

	// act
	truncateErr := es.Truncate(ctx)
	events, maxSeq, queryErr := es.Query(ctx, filter)

	// assert
	require.NoError(t, truncateErr)
	require.NoError(t, queryErr)
	assert.Empty(t, events)
	assert.Equal(t, eventstore.MaxSequenceNumberUint(0), maxSeq)
}
