package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/config"
	"github.com/tuanvumaihuynh/price-tracker/internal/log"
	"github.com/tuanvumaihuynh/price-tracker/internal/repository"
	"github.com/tuanvumaihuynh/price-tracker/internal/service"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/cache"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
	"github.com/tuanvumaihuynh/price-tracker/internal/telemetry"
)

func main() {
	h, err := newHandler(context.Background())
	if err != nil {
		fmt.Printf("error initializing reprice lambda: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(h.handle)
}

// Response is returned to the scheduler after each pass.
type Response struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

var tracer = otel.Tracer("cmd/pt-reprice-lambda")

type handler struct {
	logger  *slog.Logger
	reprice service.RepriceService
	// flush exports spans before the runtime freezes the sandbox.
	flush func(ctx context.Context) error
}

// newHandler wires dependencies once per cold start; warm invocations reuse them.
func newHandler(ctx context.Context) (*handler, error) {
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
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	// The provider lives as long as the sandbox; spans are flushed per invocation.
	if _, err := telemetry.InitTracer(ctx, cfg.Otel); err != nil {
		return nil, fmt.Errorf("error initializing tracer: %w", err)
	}

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("error creating pgx pool: %w", err)
	}

	dbClient := db.NewClient(pgxPool)

	extractionAgent, err := agent.New(cfg.Agent, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating extraction agent: %w", err)
	}

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("error creating redis client: %w", err)
		}
		extractionAgent = agent.NewCached(extractionAgent, cache.NewOfferCache(rdb), cfg.Redis.OfferTTL, logger)
	}

	return &handler{
		logger: logger,
		flush:  telemetry.ForceFlush,
		reprice: service.NewRepriceService(
			cfg.Reprice,
			logger,
			dbClient,
			extractionAgent,
			repository.NewProductRepository(dbClient),
			repository.NewOutboxMsgRepository(dbClient),
		),
	}, nil
}

func (h *handler) handle(ctx context.Context, ev events.CloudWatchEvent) (Response, error) {
	ctx, span := tracer.Start(ctx, "RepriceLambda",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("event.source", ev.Source),
			attribute.String("event.detail_type", ev.DetailType),
		),
	)
	defer h.flushSpans(ctx)
	defer span.End()

	h.logger.InfoContext(ctx, "repricing triggered",
		slog.String("source", ev.Source),
		slog.String("detail_type", ev.DetailType),
		slog.Time("scheduled_at", ev.Time),
	)

	res, err := h.reprice.RepriceAll(ctx)
	resp := Response{Updated: res.Updated, Skipped: res.Skipped, Total: res.Total}
	span.SetAttributes(
		attribute.Int("reprice.updated", res.Updated),
		attribute.Int("reprice.total", res.Total),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		h.logger.ErrorContext(ctx, "repricing failed", slog.Any("error", err))
		return resp, fmt.Errorf("reprice products: %w", err)
	}

	h.logger.InfoContext(ctx, "repricing completed",
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
		slog.Int("total", res.Total),
	)

	return resp, nil
}

func (h *handler) flushSpans(ctx context.Context) {
	if h.flush == nil {
		return
	}
	if err := h.flush(context.WithoutCancel(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "error flushing spans", slog.Any("error", err))
	}
}
