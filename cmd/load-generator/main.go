// Command load-generator drives the stock ledger and the order manager with a configurable rate of
// concurrent stock and order scenarios, against the event store selected by the warehouse configuration.
//
//	load-generator -rate 50 -duration 1m -books 200 -shelves 10 -scenario-weights 40,60
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/AntonStoeckl/book-warehouse-go/internal/bootstrap"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/catalog"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/ordermanager"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/shell/config"
	"github.com/AntonStoeckl/book-warehouse-go/warehouse/stockledger"
)

const (
	serviceName            = "book-warehouse-load-generator"
	defaultRate            = 30
	defaultBooks           = 100
	defaultShelves         = 10
	defaultScenarioWeights = "40,60"
	statsInterval          = 10 * time.Second
	shutdownTimeout        = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("load generator failed", "error", err)
		os.Exit(1)
	}
}

func run() (err error) {
	loadConfig, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

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

	var closers bootstrap.Closers
	defer closers.Close()

	eventStore, err := bootstrap.OpenEventStore(ctx, cfg, logger, tel, &closers)
	if err != nil {
		return fmt.Errorf("opening event store: %w", err)
	}

	ledger, err := stockledger.New(
		eventStore,
		stockledger.WithMetrics(tel.Metrics),
		stockledger.WithTracing(tel.Tracing),
	)
	if err != nil {
		return err
	}

	orders, err := ordermanager.New(
		eventStore,
		catalog.NewStaticCatalog(bookIDs(loadConfig.Books)...),
		ordermanager.WithMetrics(tel.Metrics),
		ordermanager.WithTracing(tel.Tracing),
	)
	if err != nil {
		return err
	}

	loadGen, err := NewLoadGenerator(ledger, orders, loadConfig, logger)
	if err != nil {
		return err
	}

	logger.Info("load generator started",
		"rate", loadConfig.Rate,
		"duration", loadConfig.Duration.String(),
		"books", loadConfig.Books,
		"shelves", loadConfig.Shelves,
		"storage", cfg.Storage,
	)

	reportCtx, stopReporting := context.WithCancel(ctx)
	defer stopReporting()

	go reportStats(reportCtx, loadGen, logger.Info)

	runErr := loadGen.Run(ctx)
	stopReporting()
	logStats("load generator finished", loadGen.Stats(), logger.Info)

	return runErr
}

func parseFlags(args []string) (Config, error) {
	flags := flag.NewFlagSet("load-generator", flag.ContinueOnError)

	rate := flags.Int("rate", defaultRate, "scenarios per second")
	duration := flags.Duration("duration", 0, "how long to run, until interrupted when 0")
	books := flags.Int("books", defaultBooks, "number of distinct books")
	shelves := flags.Int("shelves", defaultShelves, "number of distinct shelves")
	weights := flags.String("scenario-weights", defaultScenarioWeights, "weights of the stock,orders scenarios in percent")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	scenarioWeights, err := parseScenarioWeights(*weights)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Rate:            *rate,
		Duration:        *duration,
		Books:           *books,
		Shelves:         *shelves,
		ScenarioWeights: scenarioWeights,
	}, nil
}

func parseScenarioWeights(raw string) ([2]int, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("%w: expected 2 weights, got %d", ErrInvalidScenarioWeights, len(parts))
	}

	var weights [2]int
	for i, part := range parts {
		weight, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || weight < 0 || weight > 100 {
			return [2]int{}, fmt.Errorf("%w: %q", ErrInvalidScenarioWeights, part)
		}

		weights[i] = weight
	}

	if weights[0]+weights[1] != 100 {
		return [2]int{}, fmt.Errorf("%w: they must sum up to 100", ErrInvalidScenarioWeights)
	}

	return weights, nil
}

func reportStats(ctx context.Context, loadGen *LoadGenerator, log func(msg string, args ...any)) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logStats("load generator stats", loadGen.Stats(), log)
		}
	}
}

func logStats(msg string, stats Stats, log func(msg string, args ...any)) {
	log(msg,
		"requests", stats.Requests,
		"succeeded", stats.Succeeded,
		"rejected", stats.Rejected,
		"failed", stats.Failed,
		"dropped", stats.Dropped,
	)
}
