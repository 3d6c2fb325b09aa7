package oteladapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

const (
	attrStatus = "status"
	attrError  = "error"
)

// TracingCollector opens OpenTelemetry spans for the eventstore and the warehouse handlers.
type TracingCollector struct {
	tracer trace.Tracer
}

// NewTracingCollector creates a TracingCollector on a tracer of your TracerProvider.
func NewTracingCollector(tracer trace.Tracer) *TracingCollector {
	return &TracingCollector{tracer: tracer}
}

// StartSpan starts a span as child of the span in ctx and returns the context carrying the new span.
func (t *TracingCollector) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, eventstore.SpanContext) {

	spanCtx, span := t.tracer.Start(ctx, name, trace.WithAttributes(toAttributes(attrs)...))

	return spanCtx, &OTelSpanContext{span: span}
}

// FinishSpan sets the final attributes and status, then ends the span. Spans of other collectors are ignored.
func (t *TracingCollector) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	otelSpanCtx, ok := spanCtx.(*OTelSpanContext)
	if !ok {
		return
	}

	otelSpanCtx.span.SetAttributes(toAttributes(attrs)...)
	otelSpanCtx.setStatus(status, attrs[attrError])
	otelSpanCtx.span.End()
}

var _ eventstore.TracingCollector = (*TracingCollector)(nil)

// OTelSpanContext wraps an OpenTelemetry span.
type OTelSpanContext struct {
	span trace.Span
}

func (s *OTelSpanContext) SetStatus(status string) {
	s.setStatus(status, "")
}

func (s *OTelSpanContext) AddAttribute(key, value string) {
	s.span.SetAttributes(attribute.String(key, value))
}

// setStatus maps the status strings of the engines and handlers to span status codes.
// A command rejected by a business rule is no failure of the system: its span stays Unset.
func (s *OTelSpanContext) setStatus(status, description string) {
	s.span.SetAttributes(attribute.String(attrStatus, status))

	switch status {
	case "success":
		s.span.SetStatus(codes.Ok, "")
	case "rejected":
	case "error", "canceled", "timeout", "concurrency_conflict":
		if description == "" {
			description = status
		}
		s.span.SetStatus(codes.Error, description)
	}
}

var _ eventstore.SpanContext = (*OTelSpanContext)(nil)
