package httpadapter

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/rs/cors"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/findonshelf"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/orderdetails"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/features/pendingorders"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell"
)

const (
	defaultMaxBodyBytes   = 1 << 20
	defaultRequestTimeout = 30 * time.Second
)

var (
	// ErrNilStockLedger is returned by NewHandler without a stock ledger.
	ErrNilStockLedger = errors.New("stock ledger must not be nil")

	// ErrNilOrderManager is returned by NewHandler without an order manager.
	ErrNilOrderManager = errors.New("order manager must not be nil")

	// ErrInvalidMaxBodyBytes is returned when the body limit is not positive.
	ErrInvalidMaxBodyBytes = errors.New("max body bytes must be positive")

	// ErrInvalidRequestTimeout is returned when the request timeout is not positive.
	ErrInvalidRequestTimeout = errors.New("request timeout must be positive")
)

// StockLedger is the part of stockledger.StockLedger the API serves.
type StockLedger interface {
	PlaceStock(ctx context.Context, bookID core.BookIDString, shelfID core.ShelfIDString, quantity int) error
	TotalStock(ctx context.Context, bookID core.BookIDString) (int, error)
	FindOnShelf(ctx context.Context, bookID core.BookIDString) ([]findonshelf.ShelfStock, error)
	DeductStock(ctx context.Context, bookID core.BookIDString, shelfID core.ShelfIDString, quantity int) error
}

// OrderManager is the part of ordermanager.OrderManager the API serves.
type OrderManager interface {
	PlaceOrderWithQuantities(ctx context.Context, books map[core.BookIDString]int) (core.OrderIDString, error)
	ListPendingOrders(ctx context.Context) ([]pendingorders.PendingOrder, error)
	FulfillOrder(ctx context.Context, orderID core.OrderIDString, lines []core.FulfillmentLine) error
	GetOrder(ctx context.Context, orderID core.OrderIDString) (orderdetails.OrderDetails, error)
}

// Handler serves the warehouse API.
type Handler struct {
	ledger           StockLedger
	orders           OrderManager
	corsOrigins      []string
	maxBodyBytes     int64
	requestTimeout   time.Duration
	logger           shell.Logger
	contextualLogger shell.ContextualLogger
	router           http.Handler
}

// Option configures a Handler.
type Option func(*Handler) error

// WithCORSOrigins sets the allowed origins, "*" allows every origin. Without origins CORS headers are not sent.
func WithCORSOrigins(origins ...string) Option {
	return func(h *Handler) error {
		h.corsOrigins = origins
		return nil
	}
}

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(limit int64) Option {
	return func(h *Handler) error {
		if limit <= 0 {
			return ErrInvalidMaxBodyBytes
		}

		h.maxBodyBytes = limit

		return nil
	}
}

// WithRequestTimeout bounds the time a request may spend in the ledger or the order manager.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(h *Handler) error {
		if timeout <= 0 {
			return ErrInvalidRequestTimeout
		}

		h.requestTimeout = timeout

		return nil
	}
}

// WithLogger logs failed requests.
func WithLogger(logger shell.Logger) Option {
	return func(h *Handler) error {
		h.logger = logger
		return nil
	}
}

// WithContextualLogger logs failed requests with their context.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(h *Handler) error {
		h.contextualLogger = logger
		return nil
	}
}

// NewHandler creates the API handler.
func NewHandler(ledger StockLedger, orders OrderManager, opts ...Option) (*Handler, error) {
	if ledger == nil {
		return nil, ErrNilStockLedger
	}

	if orders == nil {
		return nil, ErrNilOrderManager
	}

	h := &Handler{
		ledger:         ledger,
		orders:         orders,
		maxBodyBytes:   defaultMaxBodyBytes,
		requestTimeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		if err := opt(h); err != nil {
			return nil, err
		}
	}

	h.router = h.routes()

	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.StripSlashes)
	router.Use(chimiddleware.Recoverer)

	router.Route("/warehouse", func(r chi.Router) {
		r.Get("/stock/{bookId}", h.makeHandler(h.getStock))
		r.Post("/stock", h.makeHandler(h.placeStock))
		r.Post("/stock/deduct", h.makeHandler(h.deductStock))
		r.Get("/books/{bookId}/shelves", h.makeHandler(h.findOnShelf))
		r.Post("/orders", h.makeHandler(h.placeOrder))
		r.Get("/orders/pending", h.makeHandler(h.listPendingOrders))
		r.Get("/orders/{orderId}", h.makeHandler(h.getOrder))
		r.Post("/orders/{orderId}/fulfill", h.makeHandler(h.fulfillOrder))
	})

	if len(h.corsOrigins) == 0 {
		return router
	}

	return cors.New(cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

// apiHandler is an endpoint that leaves writing its errors to makeHandler.
type apiHandler func(w http.ResponseWriter, r *http.Request) error

func (h *Handler) makeHandler(endpoint apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
		defer cancel()

		r = r.WithContext(ctx)
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

		if err := endpoint(w, r); err != nil {
			h.writeError(w, r, err)
		}
	}
}
