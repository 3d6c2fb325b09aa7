// Package observability provides test spies for the Logger, ContextualLogger, MetricsCollector and
// TracingCollector interfaces of the eventstore package. All spies are safe for concurrent use.
package observability
