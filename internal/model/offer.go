package model

import "github.com/shopspring/decimal"

// MaxOffers is the number of offers requested per product search.
const MaxOffers = 5

// Offer is a candidate price/link pair returned by an offer search.
type Offer struct {
	Title string          `json:"title"`
	Link  string          `json:"link"`
	Price decimal.Decimal `json:"price"`
}

// CheapestOffer returns the offer with the lowest price. Among equally cheap
// offers the first one in the given order wins. ok is false for an empty slice.
func CheapestOffer(offers []Offer) (best Offer, ok bool) {
	for i, o := range offers {
		if i == 0 || o.Price.LessThan(best.Price) {
			best = o
		}
	}
	return best, len(offers) > 0
}

// BestPrice converts the offer into the best price it would set.
func (o Offer) BestPrice() *BestPrice {
	return &BestPrice{Price: o.Price, Link: o.Link}
}
