package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	switch storableEvent.EventType {
	case core.BookCopiesPlacedOnShelfEventType:
		return unmarshalPayload[core.BookCopiesPlacedOnShelf](storableEvent.PayloadJSON)

	case core.BookCopiesTakenFromShelfEventType:
		return unmarshalPayload[core.BookCopiesTakenFromShelf](storableEvent.PayloadJSON)

	case core.TakingBookCopiesFromShelfFailedEventType:
		return unmarshalPayload[core.TakingBookCopiesFromShelfFailed](storableEvent.PayloadJSON)

	case core.OrderPlacedEventType:
		return unmarshalPayload[core.OrderPlaced](storableEvent.PayloadJSON)

	case core.OrderFulfilledEventType:
		return unmarshalPayload[core.OrderFulfilled](storableEvent.PayloadJSON)

	case core.FulfillingOrderFailedEventType:
		return unmarshalPayload[core.FulfillingOrderFailed](storableEvent.PayloadJSON)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

// unmarshalPayload decodes into the event struct itself, the payload is the JSON form of that struct.
func unmarshalPayload[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var payload E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return payload, nil
}
