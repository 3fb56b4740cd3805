package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/apperr"
	"github.com/tuanvumaihuynh/price-tracker/internal/config"
	"github.com/tuanvumaihuynh/price-tracker/internal/event"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
	"github.com/tuanvumaihuynh/price-tracker/internal/repository"
	"github.com/tuanvumaihuynh/price-tracker/internal/storage/db"
)

// RepriceResult summarizes one repricing pass. Skipped covers products
// without offers, failed searches and products disabled mid-pass.
type RepriceResult struct {
	Updated int
	Skipped int
	Total   int
}

type RepriceService interface {
	// RepriceAll refreshes the best price of every active product. A failure
	// for one product never stops the others; only a store outage fails the
	// pass, and then no progress is reported. When ctx is cancelled the
	// updates committed so far are kept and counted.
	RepriceAll(ctx context.Context) (RepriceResult, error)
}

type repriceService struct {
	cfg           config.Reprice
	logger        *slog.Logger
	db            db.DB
	agent         agent.Agent
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewRepriceService(
	cfg config.Reprice,
	logger *slog.Logger,
	db db.DB,
	agent agent.Agent,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) RepriceService {
	return &repriceService{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "reprice")),
		db:            db,
		agent:         agent,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

type repriceOutcome int

const (
	outcomeUpdated repriceOutcome = iota
	outcomeUnchanged
	outcomeNoOffers
	outcomeGone
)

func (s *repriceService) RepriceAll(ctx context.Context) (RepriceResult, error) {
	start := time.Now()

	result, err := s.repriceAll(ctx)

	label := "ok"
	switch {
	case errors.Is(err, apperr.StoreUnavailableErr):
		label = "store_unavailable"
	case err != nil:
		label = "error"
	}
	repricePassDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.ErrorContext(ctx, "repricing pass failed",
			slog.Int("updated", result.Updated),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return result, err
	}

	s.logger.InfoContext(ctx, "repricing pass finished",
		slog.Int("total", result.Total),
		slog.Int("updated", result.Updated),
		slog.Int("skipped", result.Skipped),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

func (s *repriceService) repriceAll(ctx context.Context) (RepriceResult, error) {
	products, err := s.productRepo.ListProductsByStatus(ctx, model.ProductStatusActive)
	if err != nil {
		return RepriceResult{}, storeErr(fmt.Errorf("product repository list products by status: %w", err))
	}

	if len(products) == 0 {
		return RepriceResult{}, nil
	}

	var updated, skipped atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.Concurrency, 1))

	for _, p := range products {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			outcome, err := s.repriceProduct(gctx, p)
			if err != nil {
				// Only the store path yields StoreUnavailableErr; agent failures are skipped.
				if ctx.Err() == nil && errors.Is(err, apperr.StoreUnavailableErr) {
					return err
				}

				repriceProductsTotal.WithLabelValues(repriceOutcomeFailed).Inc()
				skipped.Add(1)
				if gctx.Err() == nil {
					s.logger.WarnContext(gctx, "error repricing product",
						slog.String("product_id", p.ID.String()),
						slog.Any("error", err))
				}
				return nil
			}

			switch outcome {
			case outcomeUpdated:
				repriceProductsTotal.WithLabelValues(repriceOutcomeUpdated).Inc()
				updated.Add(1)
			case outcomeUnchanged:
				// Persisted with the same price and link.
				repriceProductsTotal.WithLabelValues(repriceOutcomeUnchanged).Inc()
				updated.Add(1)
			case outcomeNoOffers:
				repriceProductsTotal.WithLabelValues(repriceOutcomeNoOffers).Inc()
				skipped.Add(1)
			case outcomeGone:
				skipped.Add(1)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RepriceResult{}, err
	}

	result := RepriceResult{
		Updated: int(updated.Load()),
		Skipped: int(skipped.Load()),
		Total:   len(products),
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("repricing cancelled: %w", err)
	}

	return result, nil
}

// repriceProduct searches offers for p and stores the cheapest one.
func (s *repriceService) repriceProduct(ctx context.Context, p model.Product) (repriceOutcome, error) {
	offers, err := s.searchOffers(ctx, p)
	if err != nil {
		return 0, err
	}

	best, ok := model.CheapestOffer(offers)
	if !ok {
		s.logger.DebugContext(ctx, "no offers found", slog.String("product_id", p.ID.String()))
		return outcomeNoOffers, nil
	}

	outcome := outcomeUpdated
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		saved, err := s.productRepo.
			WithDB(db).
			UpdateProductBestPrice(ctx, p.ID, *best.BestPrice())
		if err != nil {
			return fmt.Errorf("product repository update product best price: %w", err)
		}

		if p.BestPrice.Equal(saved.BestPrice) {
			outcome = outcomeUnchanged
			return nil
		}

		ev := event.NewBestPriceChangedEvent(p.BestPrice, saved)
		return createOutboxMsg(ctx, s.outboxMsgRepo.WithDB(db), event.TopicProductBestPriceChanged, p.ID, ev)
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Disabled after the list was read.
			return outcomeGone, nil
		}
		return 0, storeErr(fmt.Errorf("db with tx: %w", err))
	}

	return outcome, nil
}

// searchOffers applies the per-product timeout to the agent call only.
func (s *repriceService) searchOffers(ctx context.Context, p model.Product) ([]model.Offer, error) {
	if s.cfg.ProductTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ProductTimeout)
		defer cancel()
	}

	limit := s.cfg.OfferLimit
	if limit <= 0 || limit > model.MaxOffers {
		limit = model.MaxOffers
	}

	offers, err := s.agent.SearchOffers(ctx, p.Title, p.Country, limit)
	if err != nil {
		return nil, fmt.Errorf("search offers: %w", err)
	}

	if len(offers) > limit {
		offers = offers[:limit]
	}

	return offers, nil
}
