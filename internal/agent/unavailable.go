package agent

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

var _ Agent = Unavailable{}

// Unavailable fails every call. It stands in when no provider is configured
// so ingestion and repricing report failures instead of inventing data.
type Unavailable struct {
	Reason string
}

func (u Unavailable) ExtractTitleAndPrice(context.Context, string) (ProductInfo, error) {
	return ProductInfo{}, u.err()
}

func (u Unavailable) ExtractPrice(context.Context, string) (decimal.Decimal, error) {
	return decimal.Decimal{}, u.err()
}

func (u Unavailable) SearchOffers(context.Context, string, string, int) ([]model.Offer, error) {
	return nil, u.err()
}

func (u Unavailable) err() error {
	reason := u.Reason
	if reason == "" {
		reason = "no extraction provider configured"
	}
	return fmt.Errorf("%w: unavailable: %s", ErrAgent, reason)
}
