package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus decides whether repricing considers a tracked product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDisabled ProductStatus = "disabled"
)

// Validate implements the enum contract used by pkg/validator.
func (s ProductStatus) Validate() error {
	switch s {
	case ProductStatusActive, ProductStatusDisabled:
		return nil
	default:
		return fmt.Errorf("invalid product status: %q", string(s))
	}
}

func (s ProductStatus) String() string {
	return string(s)
}

// ParseProductStatus converts a stored or user-supplied value into a ProductStatus.
func ParseProductStatus(v string) (ProductStatus, error) {
	s := ProductStatus(v)
	if err := s.Validate(); err != nil {
		return "", err
	}
	return s, nil
}

// BestPrice is the cheapest known offer for a product. Price and link only
// ever travel together.
type BestPrice struct {
	Price decimal.Decimal `json:"price"`
	Link  string          `json:"link"`
}

// Equal reports whether both best prices point at the same price and link.
func (b *BestPrice) Equal(other *BestPrice) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Price.Equal(other.Price) && b.Link == other.Link
}

type Product struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	InputLink  string          `json:"input_link"`
	Country    string          `json:"country"`
	InputPrice decimal.Decimal `json:"input_price"`
	// BestPrice is nil until the first successful repricing pass.
	BestPrice *BestPrice    `json:"best_price,omitempty"`
	Status    ProductStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsActive reports whether repricing should consider the product.
func (p Product) IsActive() bool {
	return p.Status == ProductStatusActive
}
