package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/config"
	"github.com/tuanvumaihuynh/price-tracker/internal/event"
	"github.com/tuanvumaihuynh/price-tracker/internal/http"
	"github.com/tuanvumaihuynh/price-tracker/internal/log"
	"github.com/tuanvumaihuynh/price-tracker/internal/relay"
	"github.com/tuanvumaihuynh/price-tracker/internal/repository"
	"github.com/tuanvumaihuynh/price-tracker/internal/service"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/cache"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/mq"
	"github.com/tuanvumaihuynh/price-tracker/internal/telemetry"
	"github.com/tuanvumaihuynh/price-tracker/pkg/cmdutil"
	"github.com/tuanvumaihuynh/price-tracker/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
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
		HTTP     config.HTTP
		Relay    config.Relay
		Kafka    config.Kafka
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
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	extractionAgent, cleanupAgent, err := newAgent(ctx, cfg.Agent, cfg.Redis, logger)
	if err != nil {
		return fmt.Errorf("error creating extraction agent: %w", err)
	}
	defer cleanupAgent()

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}

	productRepository := repository.NewProductRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	productService := service.NewProductService(logger, v, dbClient, extractionAgent, productRepository, outboxMsgRepository)
	repriceService := service.NewRepriceService(cfg.Reprice, logger, dbClient, extractionAgent, productRepository, outboxMsgRepository)

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(logger, kafkaConsumer)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started")

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, dbClient, productService, repriceService)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}

// newAgent builds the configured agent and puts the redis offer cache in
// front of it when REDIS_ADDR is set.
func newAgent(ctx context.Context, agentCfg config.Agent, redisCfg config.Redis, logger *slog.Logger) (agent.Agent, func(), error) {
	a, err := agent.New(agentCfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if redisCfg.Addr == "" {
		return a, func() {}, nil
	}

	rdb, err := cache.NewRedisClient(ctx, redisCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating redis client: %w", err)
	}

	cleanup := func() {
		if err := rdb.Close(); err != nil {
			logger.ErrorContext(ctx, "error closing redis client", slog.Any("error", err))
		}
	}

	return agent.NewCached(a, cache.NewOfferCache(rdb), redisCfg.OfferTTL, logger), cleanup, nil
}
