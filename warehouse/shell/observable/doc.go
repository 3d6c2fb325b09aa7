// Package observable wraps command and query handlers with metrics, tracing and logging,
// so that the handlers themselves contain only the Query → Unmarshal → Decide → Append workflow.
//
// The wrappers are applied at wiring time, for example in the stockledger and ordermanager facades:
//
//	coreHandler := deductstock.NewCommandHandler(eventStore)
//
//	handler, err := observable.NewCommandWrapper[deductstock.Command, shell.HandlerResult](
//		coreHandler,
//		observable.WithCommandMetrics[deductstock.Command, shell.HandlerResult](metricsCollector),
//		observable.WithCommandTracing[deductstock.Command, shell.HandlerResult](tracingCollector),
//	)
//
// Every observability concern is optional: a wrapper without options only delegates.
package observable
