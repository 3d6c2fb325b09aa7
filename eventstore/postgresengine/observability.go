package postgresengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

const (
	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgCloseRowsFailed          = "failed to close database rows"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgQueryCompleted           = "query completed"
	logMsgEventsAppended           = "events appended"
	logMsgConcurrencyConflict      = "concurrency conflict detected"
	logMsgSchemaEnsured            = "schema ensured"
	logMsgSchemaFailed             = "ensuring schema failed"
	logMsgSQLExecuted              = "executed sql for: "
	logMsgOperation                = "eventstore operation: "

	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrTable            = "table"
	logAttrEventType        = "event_type"
	logAttrEventCount       = "event_count"
	logAttrDurationMS       = "duration_ms"
	logAttrExpectedEvents   = "expected_events"
	logAttrRowsAffected     = "rows_affected"
	logAttrExpectedSequence = "expected_sequence"
	logActionQuery          = "query"
	logActionAppend         = "append"
	logActionSchema         = "schema"

	metricQueryDuration        = "eventstore_query_duration_seconds"
	metricAppendDuration       = "eventstore_append_duration_seconds"
	metricEventsQueried        = "eventstore_events_queried_total"
	metricEventsAppended       = "eventstore_events_appended_total"
	metricConcurrencyConflicts = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors       = "eventstore_database_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	spanAttrOperation      = "operation"
	spanAttrEventCount     = "event_count"
	spanAttrEventType      = "event_type"
	spanAttrMaxSequence    = "max_sequence"
	spanAttrExpectedSeq    = "expected_sequence"
	spanAttrExpectedEvents = "expected_events"
	spanAttrRowsAffected   = "rows_affected"
	spanAttrDurationMS     = "duration_ms"
	spanAttrErrorType      = "error_type"

	labelStatus       = "status"
	labelConflictType = "conflict_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeBuildQuery          = "build_query"
	errorTypeDatabaseQuery       = "database_query"
	errorTypeDatabaseExec        = "database_exec"
	errorTypeRowScan             = "row_scan"
	errorTypeConcurrencyConflict = "concurrency_conflict"
)

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

/***** logging *****/

// logQueryWithDuration logs executed SQL at debug level, the statement is only useful during development.
func (es *EventStore) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if es.logger != nil {
		es.logger.Debug(logMsgSQLExecuted+action, args...)
	}

	if es.contextualLogger != nil {
		es.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	}
}

func (es *EventStore) logOperation(ctx context.Context, action string, args ...any) {
	if es.logger != nil {
		es.logger.Info(logMsgOperation+action, args...)
	}

	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

func (es *EventStore) logWarn(ctx context.Context, message string, args ...any) {
	if es.logger != nil {
		es.logger.Warn(message, args...)
	}

	if es.contextualLogger != nil {
		es.contextualLogger.WarnContext(ctx, message, args...)
	}
}

func (es *EventStore) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if es.logger != nil {
		es.logger.Error(message, allArgs...)
	}

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

/***** metrics *****/

func (es *EventStore) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, duration, labels)
}

func (es *EventStore) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es *EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

func operationLabels(operation, status string) map[string]string {
	return map[string]string{spanAttrOperation: operation, labelStatus: status}
}

// operationMetricsObserver records the metrics of one Query or Append call.
type operationMetricsObserver struct {
	es        *EventStore
	ctx       context.Context
	operation string
	metric    string
}

func (es *EventStore) startQueryMetrics(ctx context.Context) *operationMetricsObserver {
	return &operationMetricsObserver{es: es, ctx: ctx, operation: operationQuery, metric: metricQueryDuration}
}

func (es *EventStore) startAppendMetrics(ctx context.Context) *operationMetricsObserver {
	return &operationMetricsObserver{es: es, ctx: ctx, operation: operationAppend, metric: metricAppendDuration}
}

func (o *operationMetricsObserver) recordSuccess(eventStream eventstore.StorableEvents, duration time.Duration) {
	o.es.recordDuration(o.ctx, o.metric, duration, operationLabels(o.operation, statusSuccess))
	o.es.recordValue(o.ctx, metricEventsQueried, float64(len(eventStream)), operationLabels(o.operation, statusSuccess))
}

func (o *operationMetricsObserver) recordAppended(eventCount int, duration time.Duration) {
	o.es.recordDuration(o.ctx, o.metric, duration, operationLabels(o.operation, statusSuccess))
	o.es.recordValue(o.ctx, metricEventsAppended, float64(eventCount), operationLabels(o.operation, statusSuccess))
}

func (o *operationMetricsObserver) recordError(errorType string, duration time.Duration) {
	o.es.recordDuration(o.ctx, o.metric, duration, operationLabels(o.operation, statusError))

	errorLabels := operationLabels(o.operation, statusError)
	errorLabels[spanAttrErrorType] = errorType
	o.es.incrementCounter(o.ctx, metricDatabaseErrors, errorLabels)
}

// recordConcurrencyConflict is counted apart from database errors.
func (o *operationMetricsObserver) recordConcurrencyConflict(duration time.Duration) {
	o.es.recordDuration(o.ctx, o.metric, duration, operationLabels(o.operation, errorTypeConcurrencyConflict))
	o.es.incrementCounter(o.ctx, metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: o.operation,
		labelConflictType: "concurrency",
	})
}

/***** tracing *****/

// operationTracingObserver wraps the span of one Query or Append call. All methods are no-ops without a span.
type operationTracingObserver struct {
	es   *EventStore
	span eventstore.SpanContext
}

func (es *EventStore) startQueryTracing(ctx context.Context) (*operationTracingObserver, context.Context) {
	return es.startTracing(ctx, spanNameQuery, map[string]string{spanAttrOperation: operationQuery})
}

func (es *EventStore) startAppendTracing(
	ctx context.Context,
	events eventstore.StorableEvents,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
) (*operationTracingObserver, context.Context) {

	attrs := map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrEventCount:  fmt.Sprintf("%d", len(events)),
		spanAttrExpectedSeq: fmt.Sprintf("%d", expectedMaxSequenceNumber),
	}

	if len(events) > 0 {
		attrs[spanAttrEventType] = events[0].EventType
	}

	return es.startTracing(ctx, spanNameAppend, attrs)
}

func (es *EventStore) startTracing(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (*operationTracingObserver, context.Context) {

	if es.tracingCollector == nil {
		return &operationTracingObserver{es: es}, ctx
	}

	newCtx, span := es.tracingCollector.StartSpan(ctx, name, attrs)

	return &operationTracingObserver{es: es, span: span}, newCtx
}

func (o *operationTracingObserver) finishSuccess(
	eventStream eventstore.StorableEvents,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
	duration time.Duration,
) {

	o.finish(statusSuccess, map[string]string{
		spanAttrEventCount:  fmt.Sprintf("%d", len(eventStream)),
		spanAttrMaxSequence: fmt.Sprintf("%d", maxSequenceNumber),
		spanAttrDurationMS:  fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (o *operationTracingObserver) finishAppended(rowsAffected int64, duration time.Duration) {
	o.finish(statusSuccess, map[string]string{
		spanAttrRowsAffected: fmt.Sprintf("%d", rowsAffected),
		spanAttrDurationMS:   fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (o *operationTracingObserver) finishError(errorType string, duration time.Duration) {
	o.finishErrorWithAttrs(errorType, map[string]string{
		spanAttrDurationMS: fmt.Sprintf("%.2f", toMilliseconds(duration)),
	})
}

func (o *operationTracingObserver) finishErrorWithAttrs(errorType string, attrs map[string]string) {
	allAttrs := map[string]string{spanAttrErrorType: errorType}
	for key, value := range attrs {
		allAttrs[key] = value
	}

	o.finish(statusError, allAttrs)
}

func (o *operationTracingObserver) finish(status string, attrs map[string]string) {
	if o.span == nil {
		return
	}

	o.span.SetStatus(status)
	for key, value := range attrs {
		o.span.AddAttribute(key, value)
	}

	o.es.tracingCollector.FinishSpan(o.span, status, attrs)
}
