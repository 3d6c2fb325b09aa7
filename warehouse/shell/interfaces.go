package shell

import (
	"context"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

// QueriesEvents is what query handlers need from an eventstore engine.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is what command handlers need from an eventstore engine.
type EventStore interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
// It must work on the zero value.
type Command interface {
	CommandType() string
}

// CommandResult is returned by command handlers. Every result carries the handler's execution metadata.
type CommandResult interface {
	HandlerMetadata() HandlerResult
}

// CommandHandler processes one type of command with pure business logic and retry.
// Implementations are wrapped with observability by the observable package.
type CommandHandler[C Command, R CommandResult] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Query represents the contract for all query types. The QueryType method must work on the zero value.
type Query interface {
	QueryType() string
}

// QueryHandler processes one type of query and returns its projection.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
