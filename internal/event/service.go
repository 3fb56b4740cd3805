package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tuanvumaihuynh/price-tracker/internal/storage/mq"
)

var eventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "events_consumed_total",
	Help: "Number of consumed domain events by topic and result.",
}, []string{"topic", "result"})

// Service is the event service.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(
		TopicProductTracked,
		handle(TopicProductTracked, s.handleProductTracked),
	); err != nil {
		return nil, fmt.Errorf("register product tracked event handler: %w", err)
	}

	if err := s.mqConsumer.RegisterHandler(
		TopicProductBestPriceChanged,
		handle(TopicProductBestPriceChanged, s.handleBestPriceChanged),
	); err != nil {
		return nil, fmt.Errorf("register best price changed event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

// handle decodes the payload into E before calling fn.
func handle[E any](name string, fn func(ctx context.Context, ev E) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev E
		if err := json.Unmarshal(payload, &ev); err != nil {
			eventsConsumed.WithLabelValues(topic, "malformed").Inc()
			return fmt.Errorf("unmarshal %s event: %w", name, err)
		}

		if err := fn(ctx, ev); err != nil {
			eventsConsumed.WithLabelValues(topic, "failed").Inc()
			return fmt.Errorf("handle %s event: %w", name, err)
		}

		eventsConsumed.WithLabelValues(topic, "ok").Inc()
		return nil
	}
}

func (s *Service) handleProductTracked(ctx context.Context, ev ProductTrackedEvent) error {
	s.logger.InfoContext(ctx, "product tracked",
		slog.String("product_id", ev.ProductID.String()),
		slog.String("title", ev.Title),
		slog.String("country", ev.Country),
		slog.String("input_price", ev.InputPrice.String()),
	)
	return nil
}

func (s *Service) handleBestPriceChanged(ctx context.Context, ev BestPriceChangedEvent) error {
	attrs := []any{
		slog.String("product_id", ev.ProductID.String()),
		slog.String("title", ev.Title),
		slog.String("best_price", ev.Current.Price.String()),
		slog.String("best_price_link", ev.Current.Link),
	}
	if ev.Previous != nil {
		attrs = append(attrs, slog.String("previous_price", ev.Previous.Price.String()))
	}

	s.logger.InfoContext(ctx, "best price changed", attrs...)
	return nil
}
