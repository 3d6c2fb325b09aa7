package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore/oteladapters"
)

func newCollector(t *testing.T) (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewMetricsCollector(provider.Meter("warehouse")), reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	byName := make(map[string]metricdata.Metrics)
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			byName[m.Name] = m
		}
	}

	return byName
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	collector, reader := newCollector(t)

	// act
	collector.RecordDuration(
		"commandhandler_handle_duration_seconds",
		250*time.Millisecond,
		map[string]string{"command_type": "PlaceStock", "status": "success"},
	)

	// assert
	metrics := collect(t, reader)
	m, found := metrics["commandhandler_handle_duration_seconds"]
	require.True(t, found)
	assert.Equal(t, "s", m.Unit)
	assert.Equal(t, "warehouse command duration", m.Description)

	histogram, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.25, histogram.DataPoints[0].Sum, 0.0001)

	commandType, _ := histogram.DataPoints[0].Attributes.Value(attribute.Key("command_type"))
	assert.Equal(t, "PlaceStock", commandType.AsString())
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	collector, reader := newCollector(t)
	labels := map[string]string{"operation": "append", "conflict_type": "concurrency"}

	// act
	collector.IncrementCounter("eventstore_concurrency_conflicts_total", labels)
	collector.IncrementCounterContext(context.Background(), "eventstore_concurrency_conflicts_total", labels)

	// assert
	m := collect(t, reader)["eventstore_concurrency_conflicts_total"]
	assert.Equal(t, "event store operation count", m.Description)

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	collector, reader := newCollector(t)

	// act
	collector.RecordValue("eventstore_events_queried_total", 3, map[string]string{"operation": "query"})
	collector.RecordValueContext(context.Background(), "eventstore_events_queried_total", 7, map[string]string{"operation": "query"})

	// assert
	gauge, ok := collect(t, reader)["eventstore_events_queried_total"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7, gauge.DataPoints[0].Value, 0)
}

func Test_MetricsCollector_ConcurrentUse(t *testing.T) {
	// arrange
	collector, reader := newCollector(t)

	var wg sync.WaitGroup

	// act
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.IncrementCounterContext(context.Background(), "queryhandler_handle_calls_total", map[string]string{"status": "success"})
		}()
	}
	wg.Wait()

	// assert
	sum, ok := collect(t, reader)["queryhandler_handle_calls_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(20), sum.DataPoints[0].Value)
}
