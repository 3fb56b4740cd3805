package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

type titlePriceJSON struct {
	Title string           `json:"title"`
	Price *decimal.Decimal `json:"price"`
}

type offerJSON struct {
	Title string           `json:"title"`
	Link  string           `json:"link"`
	Price *decimal.Decimal `json:"price"`
}

// stripCodeFence removes a surrounding markdown code fence that chat models
// like to add even in JSON mode.
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func parseTitleAndPrice(content string) (ProductInfo, error) {
	var resp titlePriceJSON
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &resp); err != nil {
		return ProductInfo{}, fmt.Errorf("%w: decode title and price: %w", ErrAgent, err)
	}

	title := strings.TrimSpace(resp.Title)
	if title == "" {
		return ProductInfo{}, fmt.Errorf("%w: response has no title", ErrAgent)
	}

	price, err := requirePrice(resp.Price)
	if err != nil {
		return ProductInfo{}, err
	}

	return ProductInfo{Title: title, Price: price}, nil
}

func parsePrice(content string) (decimal.Decimal, error) {
	var resp titlePriceJSON
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &resp); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: decode price: %w", ErrAgent, err)
	}
	return requirePrice(resp.Price)
}

func requirePrice(p *decimal.Decimal) (decimal.Decimal, error) {
	if p == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: response has no price", ErrAgent)
	}
	price, err := model.NormalizePrice(*p)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrAgent, err)
	}
	return price, nil
}

// parseOffers accepts either a bare JSON array or an object with an "offers"
// array. Entries without a link or a usable price are dropped, and the result
// is truncated to limit while keeping the received order.
func parseOffers(content string, limit int) ([]model.Offer, error) {
	data := []byte(stripCodeFence(content))

	var items []json.RawMessage
	if bytes.HasPrefix(data, []byte("[")) {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("%w: decode offers: %w", ErrAgent, err)
		}
	} else {
		var wrapped struct {
			Offers []json.RawMessage `json:"offers"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: decode offers: %w", ErrAgent, err)
		}
		items = wrapped.Offers
	}

	offers := make([]model.Offer, 0, min(len(items), max(limit, 0)))
	for _, item := range items {
		if len(offers) >= limit {
			break
		}

		var o offerJSON
		if err := json.Unmarshal(item, &o); err != nil {
			continue
		}
		link := strings.TrimSpace(o.Link)
		if link == "" || o.Price == nil {
			continue
		}
		price, err := model.NormalizePrice(*o.Price)
		if err != nil {
			continue
		}

		offers = append(offers, model.Offer{
			Title: strings.TrimSpace(o.Title),
			Link:  link,
			Price: price,
		})
	}

	return offers, nil
}

// parsePriceText reads a human formatted price such as "£1,299.99",
// "1.299,99 €" or "19,90".
func parsePriceText(s string) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return decimal.Decimal{}, fmt.Errorf("no digits in price %q", s)
	}

	lastDot := strings.LastIndex(digits, ".")
	lastComma := strings.LastIndex(digits, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			digits = strings.ReplaceAll(digits, ".", "")
			digits = strings.Replace(digits, ",", ".", 1)
		} else {
			digits = strings.ReplaceAll(digits, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(digits, ",") == 1 && len(digits)-lastComma-1 <= 2 {
			digits = strings.Replace(digits, ",", ".", 1)
		} else {
			digits = strings.ReplaceAll(digits, ",", "")
		}
	case lastDot >= 0 && (strings.Count(digits, ".") > 1 || len(digits)-lastDot-1 == 3):
		// A lone dot before exactly three digits groups thousands ("1.299").
		digits = strings.ReplaceAll(digits, ".", "")
	}

	d, err := decimal.NewFromString(strings.Trim(digits, "."))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse price %q: %w", s, err)
	}

	return model.NormalizePrice(d)
}
