package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/cli"
	"budget/internal/config"
	applog "budget/internal/log"
	"budget/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.Exit(cli.SetupLogger("info", "text"), "Configuration validation failed", err)
	}
	logger := cli.SetupLogger(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, logger); err != nil {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

func run(cfg *config.Config, logger *applog.Logger) error {
	logger.Info("Starting budget-worker",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("initialize AMQP client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("Failed to close AMQP client", "error", err)
		}
	}()

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	w := worker.NewEventWorker(logger, time.Minute)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx, client) })
	return g.Wait()
}
