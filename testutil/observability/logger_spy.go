package observability

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
)

// LogRecord represents a recorded log call.
type LogRecord struct {
	Level   string
	Message string
	Args    []any
	Context context.Context // context.Background() for calls of the non-contextual Logger
}

// LoggerSpy captures the calls of both the Logger and the ContextualLogger interface.
type LoggerSpy struct {
	records []LogRecord
	mu      sync.Mutex
}

// NewLoggerSpy creates a new LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{records: make([]LogRecord, 0)}
}

func (s *LoggerSpy) record(ctx context.Context, level string, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{Level: level, Message: msg, Args: args, Context: ctx})
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.record(context.Background(), "debug", msg, args) }
func (s *LoggerSpy) Info(msg string, args ...any)  { s.record(context.Background(), "info", msg, args) }
func (s *LoggerSpy) Warn(msg string, args ...any)  { s.record(context.Background(), "warn", msg, args) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.record(context.Background(), "error", msg, args) }

func (s *LoggerSpy) DebugContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "debug", msg, args)
}

func (s *LoggerSpy) InfoContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "info", msg, args)
}

func (s *LoggerSpy) WarnContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "warn", msg, args)
}

func (s *LoggerSpy) ErrorContext(ctx context.Context, msg string, args ...any) {
	s.record(ctx, "error", msg, args)
}

// Records returns a copy of all log records.
func (s *LoggerSpy) Records() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]LogRecord(nil), s.records...)
}

// HasLog checks if a log with the level and message exists.
func (s *LoggerSpy) HasLog(level string, message string) bool {
	return s.CountLogs(level, message) > 0
}

// HasInfoLog checks if an info log with the specified message exists.
func (s *LoggerSpy) HasInfoLog(message string) bool {
	return s.HasLog("info", message)
}

// HasWarnLog checks if a warn log with the specified message exists.
func (s *LoggerSpy) HasWarnLog(message string) bool {
	return s.HasLog("warn", message)
}

// HasErrorLog checks if an error log with the specified message exists.
func (s *LoggerSpy) HasErrorLog(message string) bool {
	return s.HasLog("error", message)
}

// CountLogs counts the logs with the level and message.
func (s *LoggerSpy) CountLogs(level string, message string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range s.records {
		if record.Level == level && record.Message == message {
			count++
		}
	}

	return count
}

// Reset clears all recorded log calls.
func (s *LoggerSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = s.records[:0]
}

var (
	_ eventstore.Logger           = (*LoggerSpy)(nil)
	_ eventstore.ContextualLogger = (*LoggerSpy)(nil)
)
