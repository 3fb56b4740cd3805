package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

// PriceScale is the number of fractional digits kept for every monetary value.
const PriceScale = 2

var ErrNegativePrice = errors.New("price must not be negative")

// NormalizePrice rounds a monetary value to PriceScale and rejects negatives.
func NormalizePrice(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Decimal{}, ErrNegativePrice
	}
	return d.Round(PriceScale), nil
}
