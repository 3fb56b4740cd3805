package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/config"
	"github.com/tuanvumaihuynh/price-tracker/internal/log"
	"github.com/tuanvumaihuynh/price-tracker/internal/repository"
	"github.com/tuanvumaihuynh/price-tracker/internal/service"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/cache"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/price-tracker/internal/telemetry"
	"github.com/tuanvumaihuynh/price-tracker/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running reprice application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Otel     config.Otel
		Agent    config.Agent
		Redis    config.Redis
		Reprice  config.Reprice
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(context.Background()); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	extractionAgent, err := agent.New(cfg.Agent, logger)
	if err != nil {
		return fmt.Errorf("error creating extraction agent: %w", err)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("error creating redis client: %w", err)
		}
		defer rdb.Close()

		extractionAgent = agent.NewCached(extractionAgent, cache.NewOfferCache(rdb), cfg.Redis.OfferTTL, logger)
	}

	repriceService := service.NewRepriceService(
		cfg.Reprice,
		logger,
		dbClient,
		extractionAgent,
		repository.NewProductRepository(dbClient),
		repository.NewOutboxMsgRepository(dbClient),
	)

	interruptChan := cmdutil.InterruptChan()
	go func() {
		select {
		case <-interruptChan:
			logger.InfoContext(ctx, "interrupted, stopping repricing pass")
			cancel()
		case <-ctx.Done():
		}
	}()

	res, err := repriceService.RepriceAll(ctx)
	if err != nil {
		return fmt.Errorf("error repricing products (updated %d of %d): %w", res.Updated, res.Total, err)
	}

	logger.InfoContext(ctx, "repricing completed",
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
		slog.Int("total", res.Total),
	)

	return nil
}
