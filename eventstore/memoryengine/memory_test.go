package memoryengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/book-warehouse-go/testutil/enginetest"
)

func Test_MemoryEngine_FulfilsTheEngineContract(t *testing.T) {
	enginetest.RunContractTests(t, func(t *testing.T) enginetest.EventStore {
		return memoryengine.NewEventStore()
	})
}

func Test_MemoryEngine_Append_ShouldFail_WithCanceledContext(t *testing.T) {
	// setup
	es := memoryengine.NewEventStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata("OrderPlaced", time.Now(), []byte(`{"OrderID":"1"}`))
	require.NoError(t, err)

	// act
	appendErr := es.Append(ctx, eventstore.BuildEventFilter().MatchingAnyEvent(), 0, event)
	_, _, queryErr := es.Query(ctx, eventstore.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.ErrorIs(t, appendErr, eventstore.ErrAppendingEventFailed)
	assert.ErrorIs(t, appendErr, context.Canceled)
	assert.ErrorIs(t, queryErr, eventstore.ErrQueryingEventsFailed)
	assert.Equal(t, 0, es.Len())
}

func Test_MemoryEngine_Append_ShouldFail_WithNonObjectPayload(t *testing.T) {
	// setup
	es := memoryengine.NewEventStore()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata("OrderPlaced", time.Now(), []byte(`[1,2]`))
	require.NoError(t, err)

	// act
	appendErr := es.Append(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent(), 0, event)

	// assert
	assert.ErrorIs(t, appendErr, memoryengine.ErrDecodingPayloadFailed)
	assert.Equal(t, 0, es.Len())
}

func Test_MemoryEngine_Query_ReturnsCopies(t *testing.T) {
	// setup
	ctx := context.Background()
	es := memoryengine.NewEventStore()
	filter := eventstore.BuildEventFilter().MatchingAnyEvent()

	event, err := eventstore.BuildStorableEventWithEmptyMetadata("OrderPlaced", time.Now(), []byte(`{"OrderID":"1"}`))
	require.NoError(t, err)
	require.NoError(t, es.Append(ctx, filter, 0, event))

	// act
	first, _, err := es.Query(ctx, filter)
	require.NoError(t, err)
	first[0].PayloadJSON[2] = 'X'
	second, maxSeq, err := es.Query(ctx, filter)

	// assert
	require.NoError(t, err)
	assert.JSONEq(t, `{"OrderID":"1"}`, string(second[0].PayloadJSON))
	assert.Equal(t, eventstore.MaxSequenceNumberUint(1), maxSeq)
}
