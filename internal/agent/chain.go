package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

var _ Agent = Chain(nil)

// Chain asks each agent in turn. Extraction returns the first success; search
// is answered by the first agent that supports it.
type Chain []Agent

func (c Chain) ExtractTitleAndPrice(ctx context.Context, link string) (ProductInfo, error) {
	var errs []error
	for _, a := range c {
		info, err := a.ExtractTitleAndPrice(ctx, link)
		if err == nil {
			return info, nil
		}
		errs = append(errs, err)
	}
	return ProductInfo{}, chainError(errs)
}

func (c Chain) ExtractPrice(ctx context.Context, link string) (decimal.Decimal, error) {
	var errs []error
	for _, a := range c {
		price, err := a.ExtractPrice(ctx, link)
		if err == nil {
			return price, nil
		}
		errs = append(errs, err)
	}
	return decimal.Decimal{}, chainError(errs)
}

func (c Chain) SearchOffers(ctx context.Context, title, country string, limit int) ([]model.Offer, error) {
	for _, a := range c {
		offers, err := a.SearchOffers(ctx, title, country, limit)
		if errors.Is(err, ErrUnsupported) {
			continue
		}
		return offers, err
	}
	return nil, fmt.Errorf("%w: chain search: %w", ErrAgent, ErrUnsupported)
}

func chainError(errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("%w: empty chain", ErrAgent)
	}
	return fmt.Errorf("%w: all agents failed: %w", ErrAgent, errors.Join(errs...))
}
