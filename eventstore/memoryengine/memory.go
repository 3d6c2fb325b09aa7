package memoryengine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

const (
	logMsgQueryCompleted      = "eventstore operation: query completed"
	logMsgEventsAppended      = "eventstore operation: events appended"
	logMsgConcurrencyConflict = "eventstore operation: concurrency conflict detected"
	logAttrEventCount         = "event_count"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
)

// ErrDecodingPayloadFailed is joined with the decoder error when a stored payload can not be matched against a Filter.
var ErrDecodingPayloadFailed = errors.New("decoding the event payload failed")

// storedEvent keeps the decoded top-level string values of the payload, so that filters
// do not decode JSON on every Query.
type storedEvent struct {
	sequenceNumber eventstore.MaxSequenceNumberUint
	event          eventstore.StorableEvent
	payloadValues  map[eventstore.FilterKeyString]eventstore.FilterValString
}

// EventStore is an in-process engine. It has the same semantics as the PostgreSQL engine
// but loses its events when the process ends.
type EventStore struct {
	mu     sync.RWMutex
	events []storedEvent
	logger eventstore.Logger
}

// Option configures an EventStore on construction.
type Option func(*EventStore)

// WithLogger sets a Logger for operational messages at debug level.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) {
		es.logger = logger
	}
}

// NewEventStore creates an empty EventStore.
func NewEventStore(options ...Option) *EventStore {
	es := &EventStore{}

	for _, option := range options {
		option(es)
	}

	return es
}

// Query returns copies of the events matching the filter in append order and the highest sequence number among them.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	if err := ctx.Err(); err != nil {
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, err)
	}

	es.mu.RLock()
	defer es.mu.RUnlock()

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := es.maxSequenceNumberFor(filter, func(stored storedEvent) {
		eventStream = append(eventStream, cloneEvent(stored.event))
	})

	if es.logger != nil {
		es.logger.Debug(logMsgQueryCompleted, logAttrEventCount, len(eventStream))
	}

	return eventStream, maxSequenceNumber, nil
}

// Append stores the events if the highest sequence number of the events matching the filter
// is still expectedMaxSequenceNumber, otherwise it returns eventstore.ErrConcurrencyConflict.
// All events of one call are stored or none.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	if err := ctx.Err(); err != nil {
		return errors.Join(eventstore.ErrAppendingEventFailed, err)
	}

	allEvents := append(eventstore.StorableEvents{event}, additionalEvents...)

	decoded := make([]storedEvent, 0, len(allEvents))
	for _, e := range allEvents {
		if e.EventType == "" {
			return errors.Join(eventstore.ErrAppendingEventFailed, eventstore.ErrEmptyEventType)
		}

		payloadValues, decodeErr := topLevelStringValues(e.PayloadJSON)
		if decodeErr != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, ErrDecodingPayloadFailed, decodeErr)
		}

		decoded = append(decoded, storedEvent{event: cloneEvent(e), payloadValues: payloadValues})
	}

	es.mu.Lock()
	defer es.mu.Unlock()

	actualMaxSequenceNumber := es.maxSequenceNumberFor(filter, nil)
	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		if es.logger != nil {
			es.logger.Debug(
				logMsgConcurrencyConflict,
				logAttrExpectedSequence, expectedMaxSequenceNumber,
				logAttrActualSequence, actualMaxSequenceNumber,
			)
		}

		return eventstore.ErrConcurrencyConflict
	}

	nextSequenceNumber := eventstore.MaxSequenceNumberUint(len(es.events))
	for i := range decoded {
		nextSequenceNumber++
		decoded[i].sequenceNumber = nextSequenceNumber
	}

	es.events = append(es.events, decoded...)

	if es.logger != nil {
		es.logger.Debug(logMsgEventsAppended, logAttrEventCount, len(decoded))
	}

	return nil
}

// Len returns the number of stored events.
func (es *EventStore) Len() int {
	es.mu.RLock()
	defer es.mu.RUnlock()

	return len(es.events)
}

// maxSequenceNumberFor must be called with the lock held. It calls visit for every matching event.
func (es *EventStore) maxSequenceNumberFor(filter eventstore.Filter, visit func(storedEvent)) eventstore.MaxSequenceNumberUint {
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for _, stored := range es.events {
		if !filter.Matches(stored.event.EventType, stored.payloadValues) {
			continue
		}

		maxSequenceNumber = stored.sequenceNumber

		if visit != nil {
			visit(stored)
		}
	}

	return maxSequenceNumber
}

// topLevelStringValues extracts the top-level string fields of a JSON object, which is what predicates match against.
func topLevelStringValues(payloadJSON []byte) (map[eventstore.FilterKeyString]eventstore.FilterValString, error) {
	var raw map[string]any
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &raw); err != nil {
		return nil, err
	}

	values := make(map[eventstore.FilterKeyString]eventstore.FilterValString, len(raw))
	for key, val := range raw {
		if s, ok := val.(string); ok {
			values[key] = s
		}
	}

	return values, nil
}

func cloneEvent(e eventstore.StorableEvent) eventstore.StorableEvent {
	return eventstore.StorableEvent{
		EventType:    e.EventType,
		OccurredAt:   e.OccurredAt.Truncate(time.Microsecond),
		PayloadJSON:  slices.Clone(e.PayloadJSON),
		MetadataJSON: slices.Clone(e.MetadataJSON),
	}
}
