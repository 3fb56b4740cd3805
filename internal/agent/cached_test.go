package agent_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

type memoryOfferCache struct {
	entries map[string][]model.Offer
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
}

func newMemoryOfferCache() *memoryOfferCache {
	return &memoryOfferCache{
		entries: map[string][]model.Offer{},
		ttls:    map[string]time.Duration{},
	}
}

func (c *memoryOfferCache) GetOffers(_ context.Context, key string) ([]model.Offer, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	offers, ok := c.entries[key]
	return offers, ok, nil
}

func (c *memoryOfferCache) SetOffers(_ context.Context, key string, offers []model.Offer, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = offers
	c.ttls[key] = ttl
	return nil
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	offers := []model.Offer{{Title: "A", Link: "https://a", Price: decimal.NewFromInt(7)}}

	t.Run("Should call agent once per title and country", func(t *testing.T) {
		next := &stubAgent{offers: offers}
		cache := newMemoryOfferCache()
		c := agent.NewCached(next, cache, time.Minute, logger)

		got, err := c.SearchOffers(ctx, "Acme  Kettle", "gb", 5)
		require.NoError(t, err)
		assert.Equal(t, offers, got)

		got, err = c.SearchOffers(ctx, "acme kettle", "GB", 5)
		require.NoError(t, err)
		assert.Equal(t, offers, got)

		assert.Equal(t, 1, next.calls)
		require.Len(t, cache.ttls, 1)
		for _, ttl := range cache.ttls {
			assert.Equal(t, time.Minute, ttl)
		}
	})

	t.Run("Should cache empty result", func(t *testing.T) {
		next := &stubAgent{offers: []model.Offer{}}
		c := agent.NewCached(next, newMemoryOfferCache(), time.Minute, logger)

		for range 2 {
			got, err := c.SearchOffers(ctx, "Kettle", "GB", 5)
			require.NoError(t, err)
			assert.Empty(t, got)
		}
		assert.Equal(t, 1, next.calls)
	})

	t.Run("Should not cache failures", func(t *testing.T) {
		next := &stubAgent{searchErr: agent.ErrAgent}
		cache := newMemoryOfferCache()
		c := agent.NewCached(next, cache, time.Minute, logger)

		_, err := c.SearchOffers(ctx, "Kettle", "GB", 5)
		assert.ErrorIs(t, err, agent.ErrAgent)
		assert.Empty(t, cache.entries)
	})

	t.Run("Should fall through when cache is down", func(t *testing.T) {
		next := &stubAgent{offers: offers}
		cache := newMemoryOfferCache()
		cache.getErr = errors.New("connection refused")
		cache.setErr = errors.New("connection refused")
		c := agent.NewCached(next, cache, time.Minute, logger)

		got, err := c.SearchOffers(ctx, "Kettle", "GB", 5)
		require.NoError(t, err)
		assert.Equal(t, offers, got)
	})

	t.Run("Should pass extraction through", func(t *testing.T) {
		next := &stubAgent{info: agent.ProductInfo{Title: "Kettle", Price: decimal.NewFromInt(3)}}
		c := agent.NewCached(next, newMemoryOfferCache(), time.Minute, logger)

		info, err := c.ExtractTitleAndPrice(ctx, "https://x")
		require.NoError(t, err)
		assert.Equal(t, "Kettle", info.Title)
	})
}
