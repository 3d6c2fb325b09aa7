// Package oteladapters implements the eventstore observability interfaces on OpenTelemetry.
//
// MetricsCollector records on a metric.Meter, TracingCollector opens spans on a trace.Tracer,
// and SlogBridgeLogger and OTelLogger log with trace correlation.
// The warehouse server wires them into the engines and into the stock ledger and order manager.
package oteladapters
