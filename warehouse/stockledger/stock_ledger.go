package stockledger

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/deductstock"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/findonshelf"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/placestock"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/totalstock"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/observable"
)

// ErrNilEventStore is returned by New without an event store.
var ErrNilEventStore = errors.New("event store must not be nil")

// StockLedger places, counts, locates and deducts copies of books on shelves.
type StockLedger struct {
	placeStock  shell.CommandHandler[placestock.Command, shell.HandlerResult]
	deductStock shell.CommandHandler[deductstock.Command, shell.HandlerResult]
	totalStock  shell.QueryHandler[totalstock.Query, totalstock.TotalStock]
	findOnShelf shell.QueryHandler[findonshelf.Query, findonshelf.BookLocations]
	clock       func() time.Time
}

// New wires the handlers of the ledger on top of eventStore.
func New(eventStore shell.EventStore, opts ...Option) (*StockLedger, error) {
	if eventStore == nil {
		return nil, ErrNilEventStore
	}

	cfg := config{clock: time.Now}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	placeStock, err := observable.WrapCommandHandler[placestock.Command, shell.HandlerResult](
		placestock.NewCommandHandler(eventStore, placestock.WithRetryOptions(cfg.retryOptions...)),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	deductStock, err := observable.WrapCommandHandler[deductstock.Command, shell.HandlerResult](
		deductstock.NewCommandHandler(eventStore, deductstock.WithRetryOptions(cfg.retryOptions...)),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	totalStock, err := observable.WrapQueryHandler[totalstock.Query, totalstock.TotalStock](
		totalstock.NewQueryHandler(eventStore),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	findOnShelf, err := observable.WrapQueryHandler[findonshelf.Query, findonshelf.BookLocations](
		findonshelf.NewQueryHandler(eventStore),
		cfg.observability,
	)
	if err != nil {
		return nil, err
	}

	return &StockLedger{
		placeStock:  placeStock,
		deductStock: deductStock,
		totalStock:  totalStock,
		findOnShelf: findOnShelf,
		clock:       cfg.clock,
	}, nil
}

// PlaceStock puts quantity copies of the book on the shelf, creating or incrementing the stock entry.
func (l *StockLedger) PlaceStock(
	ctx context.Context,
	bookID core.BookIDString,
	shelfID core.ShelfIDString,
	quantity int,
) error {

	command, err := placestock.BuildCommand(bookID, shelfID, quantity, l.clock())
	if err != nil {
		return err
	}

	_, err = l.placeStock.Handle(ctx, command)

	return err
}

// TotalStock returns the number of copies of the book over all shelves, 0 for an unknown book.
func (l *StockLedger) TotalStock(ctx context.Context, bookID core.BookIDString) (int, error) {
	query, err := totalstock.BuildQuery(bookID)
	if err != nil {
		return 0, err
	}

	result, err := l.totalStock.Handle(ctx, query)
	if err != nil {
		return 0, err
	}

	return result.Stock, nil
}

// FindOnShelf lists the shelves holding copies of the book. The list is empty, not nil, for an unknown book.
func (l *StockLedger) FindOnShelf(ctx context.Context, bookID core.BookIDString) ([]findonshelf.ShelfStock, error) {
	query, err := findonshelf.BuildQuery(bookID)
	if err != nil {
		return nil, err
	}

	result, err := l.findOnShelf.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	return result.Shelves, nil
}

// DeductStock takes quantity copies of the book from the shelf.
// It fails with core.ErrNotFound without a stock entry and with core.InsufficientStockError for a shortage.
func (l *StockLedger) DeductStock(
	ctx context.Context,
	bookID core.BookIDString,
	shelfID core.ShelfIDString,
	quantity int,
) error {

	command, err := deductstock.BuildCommand(bookID, shelfID, quantity, l.clock())
	if err != nil {
		return err
	}

	_, err = l.deductStock.Handle(ctx, command)

	return err
}
