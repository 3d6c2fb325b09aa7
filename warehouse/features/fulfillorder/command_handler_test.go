package fulfillorder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/testutil/eventstorewrapper"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/fulfillorder"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/placeorder"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/placestock"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

type anyBook struct{}

func (anyBook) BookExists(context.Context, string) (bool, error) {
	return true, nil
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx, es, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// arrange
	givenStockPlaced(ctx, t, es, "book-1", "B1", 10)
	orderID := givenOrderPlaced(ctx, t, es, "book-1")
	lines := []core.FulfillmentLine{{BookID: "book-1", ShelfID: "B1", Quantity: 1}}

	// act
	result, err := fulfillorder.NewCommandHandler(es).Handle(ctx, buildCommand(t, orderID, lines, time.Now()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.RetryAttempts)

	storableEvents, history := queryBoundary(ctx, t, es, orderID, lines)
	count, _ := core.ProjectStockLevels(history).Entry("book-1", "B1")
	assert.Equal(t, 9, count)

	order, found := core.ProjectOrders(history).Get(orderID)
	require.True(t, found)
	assert.True(t, order.IsFulfilled())

	// the taken event and the OrderFulfilled event were appended by one command
	require.Len(t, storableEvents, 4)
	takenMetadata, err := shell.EventMetadataFrom(storableEvents[2])
	require.NoError(t, err)
	fulfilledMetadata, err := shell.EventMetadataFrom(storableEvents[3])
	require.NoError(t, err)
	assert.Equal(t, takenMetadata.CausationID, fulfilledMetadata.CausationID)
	assert.NotEqual(t, takenMetadata.MessageID, fulfilledMetadata.MessageID)
}

func Test_CommandHandler_Handle_Error_FailingLineRollsBackEverything(t *testing.T) {
	// setup
	ctx, es, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// arrange
	givenStockPlaced(ctx, t, es, "book-1", "A1", 5)
	givenStockPlaced(ctx, t, es, "book-2", "A1", 1)
	orderID := givenOrderPlaced(ctx, t, es, "book-1", "book-2")
	lines := []core.FulfillmentLine{
		{BookID: "book-1", ShelfID: "A1", Quantity: 1},
		{BookID: "book-2", ShelfID: "A1", Quantity: 2},
	}

	// act
	_, err := fulfillorder.NewCommandHandler(es).Handle(ctx, buildCommand(t, orderID, lines, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrInsufficientStock)

	_, history := queryBoundary(ctx, t, es, orderID, lines)
	levels := core.ProjectStockLevels(history)
	count, _ := levels.Entry("book-1", "A1")
	assert.Equal(t, 5, count, "the valid line must not be applied")
	count, _ = levels.Entry("book-2", "A1")
	assert.Equal(t, 1, count)

	order, found := core.ProjectOrders(history).Get(orderID)
	require.True(t, found)
	assert.Equal(t, core.OrderStatusPending, order.Status)
	assertFailureEventPersisted(ctx, t, es, orderID)
}

func Test_CommandHandler_Handle_Error_AlreadyFulfilledDoesNotTouchStock(t *testing.T) {
	// setup
	ctx, es, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// arrange
	givenStockPlaced(ctx, t, es, "book-1", "A1", 5)
	orderID := givenOrderPlaced(ctx, t, es, "book-1")
	lines := []core.FulfillmentLine{{BookID: "book-1", ShelfID: "A1", Quantity: 1}}

	handler := fulfillorder.NewCommandHandler(es)
	_, err := handler.Handle(ctx, buildCommand(t, orderID, lines, time.Now()))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, buildCommand(t, orderID, lines, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrAlreadyFulfilled)

	_, history := queryBoundary(ctx, t, es, orderID, lines)
	count, _ := core.ProjectStockLevels(history).Entry("book-1", "A1")
	assert.Equal(t, 4, count)
}

func Test_CommandHandler_Handle_Error_UnknownOrder(t *testing.T) {
	// setup
	ctx, es, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// act
	_, err := fulfillorder.NewCommandHandler(es).Handle(ctx, buildCommand(t, "42", nil, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_CommandHandler_Handle_ConcurrentFulfillmentsOfOneOrder(t *testing.T) {
	// setup
	ctx, es, cleanup := setupTestEnvironment(t)
	defer cleanup()

	// arrange
	givenStockPlaced(ctx, t, es, "book-1", "A1", 100)
	orderID := givenOrderPlaced(ctx, t, es, "book-1")
	lines := []core.FulfillmentLine{{BookID: "book-1", ShelfID: "A1", Quantity: 1}}
	command := buildCommand(t, orderID, lines, time.Now())

	handler := fulfillorder.NewCommandHandler(
		es,
		fulfillorder.WithRetryOptions(shell.WithMaxAttempts(50), shell.WithBaseDelay(time.Millisecond)),
	)

	const attempts = 8
	errs := make(chan error, attempts)

	// act
	for i := 0; i < attempts; i++ {
		go func() {
			_, err := handler.Handle(ctx, command)
			errs <- err
		}()
	}

	// assert
	succeeded := 0
	for i := 0; i < attempts; i++ {
		err := <-errs

		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, core.ErrAlreadyFulfilled):
		default:
			assert.NoError(t, err)
		}
	}

	assert.Equal(t, 1, succeeded)

	_, history := queryBoundary(ctx, t, es, orderID, lines)
	count, _ := core.ProjectStockLevels(history).Entry("book-1", "A1")
	assert.Equal(t, 99, count)
}

// Test helper functions

func setupTestEnvironment(t *testing.T) (context.Context, eventstorewrapper.EventStore, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	return ctx, eventstorewrapper.New(t), cancel
}

func givenStockPlaced(
	ctx context.Context,
	t *testing.T,
	es eventstorewrapper.EventStore,
	bookID, shelfID string,
	quantity int,
) {

	t.Helper()

	command, err := placestock.BuildCommand(bookID, shelfID, quantity, time.Now())
	require.NoError(t, err)

	_, err = placestock.NewCommandHandler(es).Handle(ctx, command)
	require.NoError(t, err)
}

func givenOrderPlaced(ctx context.Context, t *testing.T, es eventstorewrapper.EventStore, bookIDs ...string) string {
	t.Helper()

	command, err := placeorder.BuildCommand(bookIDs, time.Now())
	require.NoError(t, err)

	result, err := placeorder.NewCommandHandler(es, anyBook{}).Handle(ctx, command)
	require.NoError(t, err)

	return result.OrderID
}

func queryBoundary(
	ctx context.Context,
	t *testing.T,
	es eventstorewrapper.EventStore,
	orderID string,
	lines []core.FulfillmentLine,
) (eventstore.StorableEvents, core.DomainEvents) {

	t.Helper()

	storableEvents, _, err := es.Query(ctx, fulfillorder.BuildEventFilter(orderID, lines))
	require.NoError(t, err)

	history, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return storableEvents, history
}

func assertFailureEventPersisted(ctx context.Context, t *testing.T, es eventstorewrapper.EventStore, orderID string) {
	t.Helper()

	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.FulfillingOrderFailedEventType).
		AndAnyPredicateOf(eventstore.P("OrderID", orderID)).
		Finalize()

	storableEvents, _, err := es.Query(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, storableEvents, 1, "the rejected fulfillment should be recorded")
}
