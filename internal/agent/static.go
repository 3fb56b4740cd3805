package agent

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

var _ Agent = (*Static)(nil)

// Static answers with fixed data. It is a test double for local runs and is
// only used when selected explicitly.
type Static struct {
	Info   ProductInfo
	Offers []model.Offer
}

func NewStatic() *Static {
	return &Static{
		Info: ProductInfo{
			Title: "Product from page",
			Price: decimal.RequireFromString("99.99"),
		},
		Offers: []model.Offer{
			{Title: "Mock shop", Link: "https://example.com", Price: decimal.RequireFromString("100.00")},
		},
	}
}

func (s *Static) ExtractTitleAndPrice(context.Context, string) (ProductInfo, error) {
	return s.Info, nil
}

func (s *Static) ExtractPrice(context.Context, string) (decimal.Decimal, error) {
	return s.Info.Price, nil
}

func (s *Static) SearchOffers(_ context.Context, _, _ string, limit int) ([]model.Offer, error) {
	n := min(len(s.Offers), max(limit, 0))
	offers := make([]model.Offer, n)
	copy(offers, s.Offers[:n])
	return offers, nil
}
