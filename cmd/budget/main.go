package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budget/internal/cli"
	"budget/internal/config"
	apphttp "budget/internal/http"
	"budget/internal/ledger"
	applog "budget/internal/log"
	"budget/internal/notify"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.Exit(cli.SetupLogger("info", "text"), "Configuration validation failed", err)
	}
	logger := cli.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func run(cfg *config.Config, logger *applog.Logger) error {
	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	notifyCfg, err := notify.FromAppConfig(cfg)
	if err != nil {
		return fmt.Errorf("notification config: %w", err)
	}
	notifications, err := notify.NewFactory(logger).Build(ctx, notifyCfg)
	if err != nil {
		return fmt.Errorf("initialize notifications: %w", err)
	}
	if notifications.Cleanup != nil {
		defer func() {
			if err := notifications.Cleanup(); err != nil {
				logger.Error("Failed to close notification backend", "error", err)
			}
		}()
	}

	opts := []ledger.Option{
		ledger.WithIDGenerator(ledger.NewIDGenerator(cfg.IDStrategy)),
		ledger.WithNotifier(notifications.Notifier),
	}
	if cfg.SeedDemo {
		opts = append(opts, ledger.WithTransactions(ledger.DemoTransactions()...))
	}
	store := ledger.NewStore(opts...)

	srv, err := apphttp.NewServer(apphttp.Config{
		Addr:               ":" + cfg.Port,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		SummaryCacheSize:   cfg.SummaryCacheSize,
		SummaryCacheTTL:    cfg.SummaryCacheTTL,
	}, store, logger)
	if err != nil {
		return fmt.Errorf("initialize HTTP server: %w", err)
	}

	// Delivery outlives the server so requests drained by Shutdown still
	// reach the broker.
	deliverCtx, stopDelivery := context.WithCancel(context.Background())
	defer stopDelivery()
	var delivery errgroup.Group
	if notifications.Run != nil {
		delivery.Go(func() error { return notifications.Run(deliverCtx) })
	}

	logger.Info("Starting budget server",
		"port", cfg.Port,
		"notify_backend", cfg.NotifyBackend,
		"id_strategy", cfg.IDStrategy,
		"transactions", store.Snapshot().Len())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx, 10*time.Second) })
	g.Go(func() error { return srv.RunMaintenance(gctx) })
	serveErr := g.Wait()

	stopDelivery()
	if err := delivery.Wait(); err != nil {
		logger.Error("Notification delivery failed", "error", err)
	}
	if notifications.Async != nil {
		logger.Info("Notification delivery stopped", "dropped", notifications.Async.Dropped())
	}

	if serveErr != nil && ctx.Err() == nil {
		return serveErr
	}
	return nil
}
