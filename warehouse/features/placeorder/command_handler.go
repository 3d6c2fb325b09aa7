package placeorder

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

// BookCatalog is the capability of the catalog that placing orders depends on.
type BookCatalog interface {
	BookExists(ctx context.Context, bookID core.BookIDString) (bool, error)
}

// Result is returned by the CommandHandler, OrderID is empty when the order was not placed.
type Result struct {
	OrderID core.OrderIDString
	shell.HandlerResult
}

// CommandHandler checks the catalog and then runs the Query -> Unmarshal -> Decide -> Append workflow with retry.
type CommandHandler struct {
	eventStore   shell.EventStore
	catalog      BookCatalog
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, catalog BookCatalog, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
		catalog:    catalog,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle places the order. A book the catalog does not know, or can not check, fails the whole order
// with a core.BookNotFoundError before anything is appended.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	if err := h.checkCatalog(ctx, command); err != nil {
		return Result{}, err
	}

	var orderID core.OrderIDString

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		placedOrderID, execErr := h.executeCommand(retryCtx, command)
		orderID = placedOrderID

		return execErr
	}, h.retryOptions...)

	if err != nil {
		orderID = ""
	}

	return Result{OrderID: orderID, HandlerResult: shell.NewHandlerResult(retryMetrics)}, err
}

// checkCatalog looks up the books in a stable order, so the reported book is deterministic.
func (h CommandHandler) checkCatalog(ctx context.Context, command Command) error {
	bookIDs := make([]core.BookIDString, 0, len(command.Books))
	for bookID := range command.Books {
		bookIDs = append(bookIDs, bookID)
	}

	slices.Sort(bookIDs)

	for _, bookID := range bookIDs {
		exists, err := h.catalog.BookExists(ctx, bookID)
		if err != nil {
			return core.BookNotFoundError{BookID: bookID, Cause: err}
		}

		if !exists {
			return core.BookNotFoundError{BookID: bookID}
		}
	}

	return nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.OrderIDString, error) {
	filter := BuildEventFilter()

	ctx = eventstore.WithStrongConsistency(ctx)

	// Query phase
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return "", err
	}

	// Unmarshal phase
	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return "", err
	}

	// Business logic phase
	result := Decide(history, command)

	orderPlaced, ok := result.Events[0].(core.OrderPlaced)
	if !ok {
		return "", result.HasError()
	}

	// Append phase
	uid := uuid.New()
	eventMetadata := shell.BuildEventMetadata(uid, uid, uid)

	storableEvent, err := shell.StorableEventFrom(orderPlaced, eventMetadata)
	if err != nil {
		return "", err
	}

	if err = h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return "", err
	}

	return orderPlaced.OrderID, nil
}
