package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AntonStoeckl/book-warehouse-go/eventstore/oteladapters"
	"github.com/AntonStoeckl/book-warehouse-go/internal/bootstrap"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/httpadapter"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/ordermanager"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/stockledger"
)

// warehouse is the wired application: the HTTP handler and what has to be closed after serving.
type warehouse struct {
	handler http.Handler
	closers bootstrap.Closers
}

func (w *warehouse) close() {
	w.closers.Close()
}

func buildWarehouse(
	ctx context.Context,
	cfg config.Config,
	logger *oteladapters.SlogBridgeLogger,
	tel bootstrap.Telemetry,
) (_ *warehouse, err error) {

	w := &warehouse{}
	defer func() {
		if err != nil {
			w.close()
		}
	}()

	eventStore, err := bootstrap.OpenEventStore(ctx, cfg, logger, tel, &w.closers)
	if err != nil {
		return nil, fmt.Errorf("opening event store: %w", err)
	}

	books, err := bootstrap.OpenCatalog(ctx, cfg, &w.closers)
	if err != nil {
		return nil, fmt.Errorf("opening book catalog: %w", err)
	}

	ledger, err := stockledger.New(
		eventStore,
		stockledger.WithContextualLogger(logger),
		stockledger.WithMetrics(tel.Metrics),
		stockledger.WithTracing(tel.Tracing),
	)
	if err != nil {
		return nil, err
	}

	orders, err := ordermanager.New(
		eventStore,
		books,
		ordermanager.WithContextualLogger(logger),
		ordermanager.WithMetrics(tel.Metrics),
		ordermanager.WithTracing(tel.Tracing),
	)
	if err != nil {
		return nil, err
	}

	handler, err := httpadapter.NewHandler(
		ledger,
		orders,
		httpadapter.WithCORSOrigins(cfg.CORSOrigins...),
		httpadapter.WithContextualLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	w.handler = handler

	return w, nil
}
