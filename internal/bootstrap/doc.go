// Package bootstrap opens what the warehouse binaries run on, as selected by a config.Config:
// the event store engine, the book catalog and the OpenTelemetry providers.
package bootstrap
