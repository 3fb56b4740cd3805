package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/tuanvumaihuynh/price-tracker/internal/config"
	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

// NewRedisClient connects to redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// OfferCache keeps offer search results in redis as JSON.
type OfferCache struct {
	client redis.Cmdable
}

func NewOfferCache(client redis.Cmdable) *OfferCache {
	return &OfferCache{client: client}
}

func (c *OfferCache) GetOffers(ctx context.Context, key string) ([]model.Offer, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	offers, err := decodeOffers(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}

	return offers, true, nil
}

func (c *OfferCache) SetOffers(ctx context.Context, key string, offers []model.Offer, ttl time.Duration) error {
	raw, err := encodeOffers(offers)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return nil
}

func encodeOffers(offers []model.Offer) ([]byte, error) {
	if offers == nil {
		offers = []model.Offer{}
	}
	return json.Marshal(offers)
}

func decodeOffers(raw []byte) ([]model.Offer, error) {
	var offers []model.Offer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []model.Offer{}
	}
	return offers, nil
}
