package ordermanager

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/observable"
)

// ErrNilClock is returned by WithClock for a nil clock.
var ErrNilClock = errors.New("clock must not be nil")

type config struct {
	observability observable.Settings
	retryOptions  []shell.RetryOption
	clock         func() time.Time
}

// Option configures an OrderManager.
type Option func(*config) error

// WithMetrics sets the metrics collector of all handlers.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(c *config) error {
		c.observability.MetricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector of all handlers.
func WithTracing(collector shell.TracingCollector) Option {
	return func(c *config) error {
		c.observability.TracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger of all handlers.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(c *config) error {
		c.observability.ContextualLogger = logger
		return nil
	}
}

// WithLogger sets the logger of all handlers. A contextual logger takes precedence.
func WithLogger(logger shell.Logger) Option {
	return func(c *config) error {
		c.observability.Logger = logger
		return nil
	}
}

// WithRetryOptions configures the retry of concurrency conflicts of the command handlers.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(c *config) error {
		c.retryOptions = opts
		return nil
	}
}

// WithClock sets the source of the OccurredAt time of new events, time.Now by default.
func WithClock(clock func() time.Time) Option {
	return func(c *config) error {
		if clock == nil {
			return ErrNilClock
		}

		c.clock = clock

		return nil
	}
}
