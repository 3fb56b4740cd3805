package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

const (
	TopicProductTracked          = "product.tracked"
	TopicProductBestPriceChanged = "product.best_price_changed"
)

// ProductTrackedEvent is emitted once when a product starts being tracked.
type ProductTrackedEvent struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Title      string          `json:"title"`
	InputLink  string          `json:"input_link"`
	Country    string          `json:"country"`
	InputPrice decimal.Decimal `json:"input_price"`
	TrackedAt  time.Time       `json:"tracked_at"`
}

func NewProductTrackedEvent(p model.Product) ProductTrackedEvent {
	return ProductTrackedEvent{
		ProductID:  p.ID,
		Title:      p.Title,
		InputLink:  p.InputLink,
		Country:    p.Country,
		InputPrice: p.InputPrice,
		TrackedAt:  p.CreatedAt,
	}
}

// BestPriceChangedEvent is emitted by a repricing pass when the cheapest
// known offer of a product moves. Previous is nil on the first pass.
type BestPriceChangedEvent struct {
	ProductID uuid.UUID        `json:"product_id"`
	Title     string           `json:"title"`
	Country   string           `json:"country"`
	Previous  *model.BestPrice `json:"previous"`
	Current   model.BestPrice  `json:"current"`
	ChangedAt time.Time        `json:"changed_at"`
}

func NewBestPriceChangedEvent(previous *model.BestPrice, updated model.Product) BestPriceChangedEvent {
	ev := BestPriceChangedEvent{
		ProductID: updated.ID,
		Title:     updated.Title,
		Country:   updated.Country,
		Previous:  previous,
		ChangedAt: updated.UpdatedAt,
	}
	if updated.BestPrice != nil {
		ev.Current = *updated.BestPrice
	}
	return ev
}
