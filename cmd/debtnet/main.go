package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/iho/debtnet/internal/adapter/cli"
	"github.com/iho/debtnet/internal/adapter/repository"
	"github.com/iho/debtnet/internal/infrastructure/clock"
	"github.com/iho/debtnet/internal/infrastructure/config"
	"github.com/iho/debtnet/internal/infrastructure/eventpublisher"
	"github.com/iho/debtnet/internal/infrastructure/idgen"
	"github.com/iho/debtnet/internal/infrastructure/logger"
	"github.com/iho/debtnet/internal/infrastructure/metrics"
	"github.com/iho/debtnet/internal/infrastructure/postgres"
	"github.com/iho/debtnet/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "debtnet: failed to load configuration: %v\n", err)
		return 1
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: stderr,
	})

	// Open storage
	kv, closeStore, err := repository.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open storage")
		fmt.Fprintf(stderr, "debtnet: %v\n", err)
		return 1
	}
	defer closeStore()

	sysClock := clock.System{}

	// Initialize the ledger store
	store := usecase.NewLedgerStore(kv, idgen.NewULIDGenerator(), sysClock,
		usecase.WithLogger(log),
		usecase.WithStorageKey(cfg.StorageKey),
		usecase.WithNotFoundErrors(),
	)

	store.Subscribe(eventpublisher.NewLogListener(log))

	var (
		m               *metrics.Metrics
		metricsListener *eventpublisher.MetricsListener
	)
	if cfg.MetricsFile != "" {
		m = metrics.New()
		metricsListener = eventpublisher.NewMetricsListener(m, store, cfg.UpcomingWindow)
		store.Subscribe(metricsListener)
	}

	store.Load(ctx)

	opts := cli.Options{
		CurrencySymbol: cfg.CurrencySymbol,
		UpcomingWindow: cfg.UpcomingWindow,
		RecentLimit:    cfg.RecentLimit,
		Clock:          sysClock,
	}
	if cfg.StoreBackend == config.BackendPostgres {
		opts.Migrator = postgres.Migrator{DatabaseURL: cfg.DatabaseURL, Logger: log}
	}

	// Run the command
	root := cli.NewRootCommand(store, opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmdErr := root.ExecuteContext(ctx)

	if m != nil {
		metricsListener.Refresh()
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn().Err(err).Str("path", cfg.MetricsFile).Msg("failed to write metrics")
		}
	}

	if cmdErr != nil {
		fmt.Fprintf(stderr, "debtnet: %v\n", cmdErr)
		return 1
	}

	return 0
}
