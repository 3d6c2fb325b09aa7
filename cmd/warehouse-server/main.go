// Command warehouse-server serves the stock ledger and the order manager over HTTP.
//
// Configuration is read from the environment and from an optional .env file in the working directory,
// see package config for the variables. SIGINT and SIGTERM shut the server down gracefully.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/book-warehouse-go/internal/bootstrap"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
)

const (
	serviceName       = "book-warehouse"
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("warehouse server failed", "error", err)
		os.Exit(1)
	}
}

func run() (err error) {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := bootstrap.SetupTelemetry(ctx, cfg.Telemetry, serviceName)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err = errors.Join(err, tel.Shutdown(shutdownCtx))
	}()

	logger := bootstrap.NewLogger(cfg, tel, serviceName)

	app, err := buildWarehouse(ctx, cfg, logger, tel)
	if err != nil {
		return err
	}
	defer app.close()

	handler := otelhttp.NewHandler(app.handler, serviceName,
		otelhttp.WithMeterProvider(otel.GetMeterProvider()),
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("warehouse server listening", "addr", cfg.HTTPAddr, "storage", cfg.Storage, "catalog", cfg.Catalog)

		if serveErr := server.ListenAndServe(); !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}

		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("warehouse server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
