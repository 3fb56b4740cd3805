package agent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

// OfferCache stores search results by key.
type OfferCache interface {
	// GetOffers reports a miss with ok == false and a nil error.
	GetOffers(ctx context.Context, key string) (offers []model.Offer, ok bool, err error)
	SetOffers(ctx context.Context, key string, offers []model.Offer, ttl time.Duration) error
}

var _ Agent = (*Cached)(nil)

// Cached memoizes SearchOffers so products sharing a title and country cost a
// single agent call per TTL. Extraction calls pass through. Cache failures
// degrade to uncached calls.
type Cached struct {
	Agent

	cache  OfferCache
	ttl    time.Duration
	logger *slog.Logger
}

func NewCached(next Agent, cache OfferCache, ttl time.Duration, logger *slog.Logger) *Cached {
	return &Cached{
		Agent:  next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "offer_cache")),
	}
}

func (c *Cached) SearchOffers(ctx context.Context, title, country string, limit int) ([]model.Offer, error) {
	key := offersKey(title, country, limit)

	offers, ok, err := c.cache.GetOffers(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "error reading offer cache", slog.String("key", key), slog.Any("error", err))
	} else if ok {
		return offers, nil
	}

	offers, err = c.Agent.SearchOffers(ctx, title, country, limit)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetOffers(ctx, key, offers, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "error writing offer cache", slog.String("key", key), slog.Any("error", err))
	}

	return offers, nil
}

func offersKey(title, country string, limit int) string {
	norm := strings.ToLower(strings.Join(strings.Fields(title), " "))
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", norm, strings.ToUpper(strings.TrimSpace(country)), limit))
	return "offers:" + hex.EncodeToString(sum[:])
}
