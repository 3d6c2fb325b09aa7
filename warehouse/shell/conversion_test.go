package shell_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

func Test_StorableEventsFrom_ThenDomainEventsFrom_KeepsEventsAndMetadata(t *testing.T) {
	// arrange
	occurredAt := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.FixedZone("CET", 3600))
	events := core.DomainEvents{
		core.BuildOrderFulfilled(
			"7",
			[]core.FulfillmentLine{{BookID: "book-1", ShelfID: "A1", Quantity: 2}},
			occurredAt,
		),
		core.BuildBookCopiesTakenFromShelf("book-1", "A1", 2, "7", occurredAt),
	}
	commandID := uuid.New()
	metadata := shell.EventMetadataForBatch(commandID, len(events))

	// act
	storableEvents, err := shell.StorableEventsFrom(events, metadata)
	require.NoError(t, err)

	domainEvents, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	// assert
	assert.Equal(t, events, domainEvents)
	assert.Equal(t, core.OrderFulfilledEventType, storableEvents[0].EventType)

	for _, storableEvent := range storableEvents {
		eventMetadata, metadataErr := shell.EventMetadataFrom(storableEvent)
		require.NoError(t, metadataErr)
		assert.Equal(t, commandID.String(), eventMetadata.CausationID)
		assert.Equal(t, commandID.String(), eventMetadata.CorrelationID)
	}

	assert.NotEqual(t, metadata[0].MessageID, metadata[1].MessageID)
}

func Test_StorableEventFrom_PayloadCarriesPredicateKeys(t *testing.T) {
	// arrange
	event := core.BuildBookCopiesPlacedOnShelf("book-1", "A1", 3, time.Now())

	// act
	storableEvent, err := shell.StorableEventWithEmptyMetadataFrom(event)

	// assert
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(storableEvent.MetadataJSON))
	assert.Contains(t, string(storableEvent.PayloadJSON), `"BookID":"book-1"`)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"ShelfID":"A1"`)
}

func Test_StorableEventsFrom_RejectsMetadataCountMismatch(t *testing.T) {
	// act
	_, err := shell.StorableEventsFrom(
		core.DomainEvents{core.BuildOrderPlaced("1", map[string]int{"book-1": 1}, time.Now())},
		nil,
	)

	// assert
	assert.ErrorIs(t, err, shell.ErrMetadataCountMismatch)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	// arrange
	storableEvent, err := eventstore.BuildStorableEventWithEmptyMetadata("BookCopyLentToReader", time.Now(), []byte(`{}`))
	require.NoError(t, err)

	// act
	_, err = shell.DomainEventFrom(storableEvent)

	// assert
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, shell.ErrMappingToDomainEventUnknownEventType)
}
