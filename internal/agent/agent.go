// Package agent resolves product details and competing offers through an
// external extraction capability. Every implementation is unreliable by
// contract: callers must treat any error as "no data".
package agent

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

var tracer = otel.Tracer("internal/agent")

var (
	// ErrAgent wraps every failure of an extraction agent.
	ErrAgent = errors.New("extraction agent error")
	// ErrUnsupported is returned (wrapped in ErrAgent) by agents lacking an operation.
	ErrUnsupported = errors.New("operation not supported by agent")
)

// ProductInfo is what an agent can tell about a product page.
type ProductInfo struct {
	Title string
	Price decimal.Decimal
}

type Agent interface {
	// ExtractTitleAndPrice reads the product title and current price behind link.
	ExtractTitleAndPrice(ctx context.Context, link string) (ProductInfo, error)
	// ExtractPrice reads only the current price behind link.
	ExtractPrice(ctx context.Context, link string) (decimal.Decimal, error)
	// SearchOffers returns at most limit offers for title in country.
	// An empty result is valid and means no offers were found.
	SearchOffers(ctx context.Context, title, country string, limit int) ([]model.Offer, error)
}
