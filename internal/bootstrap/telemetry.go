package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

const metricExportInterval = 10 * time.Second

// Telemetry holds the collectors handed to the engines and handlers. Both are nil with telemetry "none".
//
// With telemetry "otlp" the exporters read their endpoint from the standard OTEL_EXPORTER_OTLP_* variables.
type Telemetry struct {
	Enabled       bool
	Metrics       shell.MetricsCollector
	Tracing       shell.TracingCollector
	shutdownFuncs []func(context.Context) error
}

// Shutdown flushes and stops the providers.
func (t Telemetry) Shutdown(ctx context.Context) error {
	var err error
	for _, fn := range t.shutdownFuncs {
		err = errors.Join(err, fn(ctx))
	}

	return err
}

// SetupTelemetry installs the global OpenTelemetry providers for mode, named after serviceName.
func SetupTelemetry(ctx context.Context, mode, serviceName string) (tel Telemetry, err error) {
	if mode != config.TelemetryOTLP {
		return Telemetry{}, nil
	}

	handleErr := func(inErr error) (Telemetry, error) {
		return Telemetry{}, errors.Join(inErr, tel.Shutdown(ctx))
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return Telemetry{}, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	traceExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return handleErr(err)
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter, sdktrace.WithBatchTimeout(time.Second)),
		sdktrace.WithResource(res),
	)
	tel.shutdownFuncs = append(tel.shutdownFuncs, tracerProvider.Shutdown)
	otel.SetTracerProvider(tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return handleErr(err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(metricExportInterval))),
		sdkmetric.WithResource(res),
	)
	tel.shutdownFuncs = append(tel.shutdownFuncs, meterProvider.Shutdown)
	otel.SetMeterProvider(meterProvider)

	logExporter, err := otlploghttp.New(ctx)
	if err != nil {
		return handleErr(err)
	}

	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	tel.shutdownFuncs = append(tel.shutdownFuncs, loggerProvider.Shutdown)
	global.SetLoggerProvider(loggerProvider)

	tel.Enabled = true
	tel.Metrics = oteladapters.NewMetricsCollector(meterProvider.Meter(serviceName))
	tel.Tracing = oteladapters.NewTracingCollector(tracerProvider.Tracer(serviceName))

	return tel, nil
}

// NewLogger logs through the OpenTelemetry log bridge when telemetry is exported, and as JSON to stdout otherwise.
func NewLogger(cfg config.Config, tel Telemetry, serviceName string) *oteladapters.SlogBridgeLogger {
	if tel.Enabled {
		return oteladapters.NewSlogBridgeLogger(serviceName)
	}

	return oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}),
	)
}
