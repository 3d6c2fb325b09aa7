package observable

import (
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

// Settings holds the optional observability collaborators shared by all wrappers of one component.
// Nil fields are skipped.
type Settings struct {
	MetricsCollector shell.MetricsCollector
	TracingCollector shell.TracingCollector
	ContextualLogger shell.ContextualLogger
	Logger           shell.Logger
}

// WrapCommandHandler wraps coreHandler with every collaborator configured in s.
func WrapCommandHandler[C shell.Command, R shell.CommandResult](
	coreHandler shell.CommandHandler[C, R],
	s Settings,
) (*CommandWrapper[C, R], error) {

	return NewCommandWrapper[C, R](
		coreHandler,
		WithCommandMetrics[C, R](s.MetricsCollector),
		WithCommandTracing[C, R](s.TracingCollector),
		WithCommandContextualLogging[C, R](s.ContextualLogger),
		WithCommandLogging[C, R](s.Logger),
	)
}

// WrapQueryHandler wraps coreHandler with every collaborator configured in s.
func WrapQueryHandler[Q shell.Query, R any](
	coreHandler shell.QueryHandler[Q, R],
	s Settings,
) (*QueryWrapper[Q, R], error) {

	return NewQueryWrapper[Q, R](
		coreHandler,
		WithQueryMetrics[Q, R](s.MetricsCollector),
		WithQueryTracing[Q, R](s.TracingCollector),
		WithQueryContextualLogging[Q, R](s.ContextualLogger),
		WithQueryLogging[Q, R](s.Logger),
	)
}
