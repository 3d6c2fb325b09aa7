package oteladapters_test

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// contextCapturingHandler remembers the context of the last record it handled.
type contextCapturingHandler struct {
	captured *context.Context
}

func (h contextCapturingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h contextCapturingHandler) Handle(ctx context.Context, _ slog.Record) error {
	*h.captured = ctx
	return nil
}

func (h contextCapturingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h contextCapturingHandler) WithGroup(string) slog.Handler      { return h }

func spanContextFrom(ctx context.Context) trace.SpanContext {
	return trace.SpanContextFromContext(ctx)
}
