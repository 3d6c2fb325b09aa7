package postgresengine

import (
	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

// Option configures an EventStore on construction.
type Option func(*EventStore) error

// WithTableName sets the events table, "events" by default.
func WithTableName(tableName string) Option {
	return func(es *EventStore) error {
		if tableName == "" {
			return eventstore.ErrEmptyEventsTableName
		}

		es.eventTableName = tableName

		return nil
	}
}

// WithLogger sets a Logger, for example a *slog.Logger:
//
// Debug level: executed SQL with timing
// Info level: event counts, durations, concurrency conflicts
// Warn level: cleanup failures
// Error level: failures that make an operation fail.
func WithLogger(logger eventstore.Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}

// WithContextualLogger sets a ContextualLogger, which gets the same records as the Logger,
// together with the context so that they can be correlated with the active span.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(es *EventStore) error {
		es.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets a MetricsCollector for query/append durations, event counts, conflicts and database errors.
func WithMetrics(collector eventstore.MetricsCollector) Option {
	return func(es *EventStore) error {
		es.metricsCollector = collector
		return nil
	}
}

// WithTracing sets a TracingCollector, which gets one span per Query and per Append.
func WithTracing(collector eventstore.TracingCollector) Option {
	return func(es *EventStore) error {
		es.tracingCollector = collector
		return nil
	}
}
