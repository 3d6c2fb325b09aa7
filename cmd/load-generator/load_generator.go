package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/findonshelf"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/pendingorders"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

const (
	scenarioStock  = "stock"
	scenarioOrders = "orders"

	operationTimeout = 5 * time.Second
	maxInFlight      = 64
)

var (
	// ErrInvalidRate is returned for a request rate that is not positive.
	ErrInvalidRate = errors.New("rate must be positive")

	// ErrInvalidScenarioWeights is returned for weights that are not two values in [0, 100] summing up to 100.
	ErrInvalidScenarioWeights = errors.New("invalid scenario weights")
)

// StockLedger is the part of the stock ledger the load generator drives.
type StockLedger interface {
	PlaceStock(ctx context.Context, bookID core.BookIDString, shelfID core.ShelfIDString, quantity int) error
	DeductStock(ctx context.Context, bookID core.BookIDString, shelfID core.ShelfIDString, quantity int) error
	FindOnShelf(ctx context.Context, bookID core.BookIDString) ([]findonshelf.ShelfStock, error)
}

// OrderManager is the part of the order manager the load generator drives.
type OrderManager interface {
	PlaceOrder(ctx context.Context, bookIDs []core.BookIDString) (core.OrderIDString, error)
	ListPendingOrders(ctx context.Context) ([]pendingorders.PendingOrder, error)
	FulfillOrder(ctx context.Context, orderID core.OrderIDString, lines []core.FulfillmentLine) error
}

// Config is the load profile.
type Config struct {
	Rate            int
	Duration        time.Duration
	Books           int
	Shelves         int
	ScenarioWeights [2]int // stock, orders
}

// Stats counts the outcome of the executed scenarios.
type Stats struct {
	Requests  int64
	Succeeded int64
	Rejected  int64
	Failed    int64
	Dropped   int64
}

// LoadGenerator runs a mix of stock and order scenarios at a fixed rate against the warehouse facades.
type LoadGenerator struct {
	ledger StockLedger
	orders OrderManager
	config Config
	logger shell.ContextualLogger

	requests  atomic.Int64
	succeeded atomic.Int64
	rejected  atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// NewLoadGenerator validates cfg and returns a LoadGenerator.
func NewLoadGenerator(ledger StockLedger, orders OrderManager, cfg Config, logger shell.ContextualLogger) (*LoadGenerator, error) {
	if cfg.Rate <= 0 {
		return nil, ErrInvalidRate
	}

	if cfg.ScenarioWeights[0] < 0 || cfg.ScenarioWeights[1] < 0 || cfg.ScenarioWeights[0]+cfg.ScenarioWeights[1] != 100 {
		return nil, ErrInvalidScenarioWeights
	}

	if cfg.Books <= 0 || cfg.Shelves <= 0 {
		return nil, core.InvalidArgument("books and shelves must be positive")
	}

	return &LoadGenerator{ledger: ledger, orders: orders, config: cfg, logger: logger}, nil
}

// Run starts one scenario per tick until ctx is done or the configured duration has passed.
// Ticks are dropped while too many scenarios are in flight. Run waits for the started scenarios.
func (lg *LoadGenerator) Run(ctx context.Context) error {
	if lg.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lg.config.Duration)
		defer cancel()
	}

	ticker := time.NewTicker(time.Second / time.Duration(lg.config.Rate))
	defer ticker.Stop()

	group := &errgroup.Group{}
	group.SetLimit(maxInFlight)

	for {
		select {
		case <-ctx.Done():
			_ = group.Wait()
			return nil

		case <-ticker.C:
			if !group.TryGo(func() error {
				lg.executeScenario(ctx)
				return nil
			}) {
				lg.dropped.Add(1)
			}
		}
	}
}

// Stats returns the counters so far.
func (lg *LoadGenerator) Stats() Stats {
	return Stats{
		Requests:  lg.requests.Load(),
		Succeeded: lg.succeeded.Load(),
		Rejected:  lg.rejected.Load(),
		Failed:    lg.failed.Load(),
		Dropped:   lg.dropped.Load(),
	}
}

func (lg *LoadGenerator) executeScenario(ctx context.Context) {
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), operationTimeout)
	defer cancel()

	scenario := lg.selectScenario()

	var err error
	switch scenario {
	case scenarioStock:
		err = lg.runStockScenario(opCtx)
	default:
		err = lg.runOrderScenario(opCtx)
	}

	lg.requests.Add(1)

	switch {
	case err == nil:
		lg.succeeded.Add(1)
	case shell.IsRejection(err):
		lg.rejected.Add(1)
	default:
		lg.failed.Add(1)
		lg.logger.WarnContext(opCtx, "load scenario failed", "scenario", scenario, "error", err.Error())
	}
}

func (lg *LoadGenerator) selectScenario() string {
	if rand.Intn(100) < lg.config.ScenarioWeights[0] { //nolint:gosec // load distribution only
		return scenarioStock
	}

	return scenarioOrders
}

// runStockScenario places copies twice as often as it takes them, so that orders can be fulfilled.
func (lg *LoadGenerator) runStockScenario(ctx context.Context) error {
	bookID := lg.randomBookID()
	shelfID := lg.randomShelfID()

	if rand.Intn(3) == 0 { //nolint:gosec // load distribution only
		return lg.ledger.DeductStock(ctx, bookID, shelfID, 1)
	}

	return lg.ledger.PlaceStock(ctx, bookID, shelfID, 1+rand.Intn(5)) //nolint:gosec // load distribution only
}

// runOrderScenario places a new order or fulfills the oldest pending one from the shelves currently in stock.
func (lg *LoadGenerator) runOrderScenario(ctx context.Context) error {
	if rand.Intn(2) == 0 { //nolint:gosec // load distribution only
		ordered := make([]core.BookIDString, 1+rand.Intn(3)) //nolint:gosec // load distribution only
		for i := range ordered {
			ordered[i] = lg.randomBookID()
		}

		_, err := lg.orders.PlaceOrder(ctx, ordered)

		return err
	}

	pending, err := lg.orders.ListPendingOrders(ctx)
	if err != nil || len(pending) == 0 {
		return err
	}

	order := pending[0]
	shelvesByBook := make(map[core.BookIDString][]findonshelf.ShelfStock, len(order.Books))
	for bookID := range order.Books {
		shelves, findErr := lg.ledger.FindOnShelf(ctx, bookID)
		if findErr != nil {
			return findErr
		}

		shelvesByBook[bookID] = shelves
	}

	lines, ok := planFulfillment(order, shelvesByBook)
	if !ok {
		return core.ErrInsufficientStock
	}

	return lg.orders.FulfillOrder(ctx, order.OrderID, lines)
}

// planFulfillment takes the ordered copies of each book from its shelves in the given order.
// It reports false when the shelves do not hold enough copies.
func planFulfillment(
	order pendingorders.PendingOrder,
	shelvesByBook map[core.BookIDString][]findonshelf.ShelfStock,
) ([]core.FulfillmentLine, bool) {

	lines := make([]core.FulfillmentLine, 0, len(order.Books))

	for bookID, wanted := range order.Books {
		for _, shelf := range shelvesByBook[bookID] {
			if wanted == 0 {
				break
			}

			take := min(wanted, shelf.Count)
			if take <= 0 {
				continue
			}

			lines = append(lines, core.FulfillmentLine{BookID: bookID, ShelfID: shelf.ShelfID, Quantity: take})
			wanted -= take
		}

		if wanted > 0 {
			return nil, false
		}
	}

	return lines, true
}

func (lg *LoadGenerator) randomBookID() core.BookIDString {
	return bookID(rand.Intn(lg.config.Books)) //nolint:gosec // load distribution only
}

func (lg *LoadGenerator) randomShelfID() core.ShelfIDString {
	return fmt.Sprintf("shelf-%d", rand.Intn(lg.config.Shelves)+1) //nolint:gosec // load distribution only
}

func bookID(n int) core.BookIDString {
	return fmt.Sprintf("book-%d", n+1)
}

// bookIDs returns the ids of all books the generator uses, which make up its catalog.
func bookIDs(count int) []core.BookIDString {
	ids := make([]core.BookIDString, count)
	for i := range ids {
		ids[i] = bookID(i)
	}

	return ids
}
