package ordermanager

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/fulfillorder"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/orderdetails"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/pendingorders"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/placeorder"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/observable"
)

var (
	// ErrNilEventStore is returned by New without an event store.
	ErrNilEventStore = errors.New("event store must not be nil")

	// ErrNilBookCatalog is returned by New without a book catalog.
	ErrNilBookCatalog = errors.New("book catalog must not be nil")
)

// BookCatalog answers whether a book exists. A lookup error fails the order placement like an unknown book.
type BookCatalog interface {
	BookExists(ctx context.Context, bookID core.BookIDString) (bool, error)
}

// OrderManager places, lists, fulfills and looks up orders.
type OrderManager struct {
	placeOrder    shell.CommandHandler[placeorder.Command, placeorder.Result]
	fulfillOrder  shell.CommandHandler[fulfillorder.Command, shell.HandlerResult]
	pendingOrders shell.QueryHandler[pendingorders.Query, pendingorders.PendingOrders]
	orderDetails  shell.QueryHandler[orderdetails.Query, orderdetails.OrderDetails]
	clock         func() time.Time
}

// New wires the handlers of the order manager on top of eventStore and catalog.
func New(eventStore shell.EventStore, catalog BookCatalog, opts ...Option) (*OrderManager, error) {
	if eventStore == nil {
		return nil, ErrNilEventStore
	}

	if catalog == nil {
		return nil, ErrNilBookCatalog
	}

	cfg := config{clock: time.Now}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	placeOrder, err := observable.WrapCommandHandler[placeorder.Command, placeorder.Result](
		placeorder.NewCommandHandler(eventStore, catalog, placeorder.WithRetryOptions(cfg.retryOptions...)),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	fulfillOrder, err := observable.WrapCommandHandler[fulfillorder.Command, shell.HandlerResult](
		fulfillorder.NewCommandHandler(eventStore, fulfillorder.WithRetryOptions(cfg.retryOptions...)),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	pendingOrders, err := observable.WrapQueryHandler[pendingorders.Query, pendingorders.PendingOrders](
		pendingorders.NewQueryHandler(eventStore),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	orderDetails, err := observable.WrapQueryHandler[orderdetails.Query, orderdetails.OrderDetails](
		orderdetails.NewQueryHandler(eventStore),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	return &OrderManager{
		placeOrder:    placeOrder,
		fulfillOrder:  fulfillOrder,
		pendingOrders: pendingOrders,
		orderDetails:  orderDetails,
		clock:         cfg.clock,
	}, nil
}

// PlaceOrder creates a pending order for the books and returns its id. Duplicate ids add up to quantities.
// Every book must exist in the catalog, otherwise nothing is placed and a core.BookNotFoundError is returned.
func (m *OrderManager) PlaceOrder(ctx context.Context, bookIDs []core.BookIDString) (core.OrderIDString, error) {
	command, err := placeorder.BuildCommand(bookIDs, m.clock())
	if err != nil {
		return "", err
	}

	return m.handlePlaceOrder(ctx, command)
}

// PlaceOrderWithQuantities is PlaceOrder for books that are already counted, e.g. {"b1": 2, "b2": 1}.
// Every quantity must be positive.
func (m *OrderManager) PlaceOrderWithQuantities(
	ctx context.Context,
	books map[core.BookIDString]int,
) (core.OrderIDString, error) {

	command, err := placeorder.BuildCommandFromQuantities(books, m.clock())
	if err != nil {
		return "", err
	}

	return m.handlePlaceOrder(ctx, command)
}

func (m *OrderManager) handlePlaceOrder(ctx context.Context, command placeorder.Command) (core.OrderIDString, error) {
	result, err := m.placeOrder.Handle(ctx, command)
	if err != nil {
		return "", err
	}

	return result.OrderID, nil
}

// ListPendingOrders returns the pending orders, oldest first.
func (m *OrderManager) ListPendingOrders(ctx context.Context) ([]pendingorders.PendingOrder, error) {
	result, err := m.pendingOrders.Handle(ctx, pendingorders.BuildQuery())
	if err != nil {
		return nil, err
	}

	return result.Orders, nil
}

// FulfillOrder takes the copies of all lines from their shelves and marks the order fulfilled, atomically.
// On any error the order stays as it was and no shelf changes.
func (m *OrderManager) FulfillOrder(
	ctx context.Context,
	orderID core.OrderIDString,
	lines []core.FulfillmentLine,
) error {

	command, err := fulfillorder.BuildCommand(orderID, lines, m.clock())
	if err != nil {
		return err
	}

	_, err = m.fulfillOrder.Handle(ctx, command)

	return err
}

// GetOrder returns the full record of the order, or core.ErrNotFound.
func (m *OrderManager) GetOrder(ctx context.Context, orderID core.OrderIDString) (orderdetails.OrderDetails, error) {
	query, err := orderdetails.BuildQuery(orderID)
	if err != nil {
		return orderdetails.OrderDetails{}, err
	}

	return m.orderDetails.Handle(ctx, query)
}
