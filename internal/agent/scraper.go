package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

var _ Agent = (*PageScraper)(nil)

// PageScraper reads title and price from the metadata a product page
// publishes for link previews and search engines. It cannot search offers.
type PageScraper struct {
	userAgent string
	timeout   time.Duration
}

func NewPageScraper(userAgent string, timeout time.Duration) *PageScraper {
	return &PageScraper{
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// pageData collects candidates in the order of preference for each field.
type pageData struct {
	ogTitle, ldTitle, h1, htmlTitle string
	metaPrice, ldPrice, itemPrice   string
}

func (d pageData) title() string {
	return firstNonEmpty(d.ogTitle, d.ldTitle, d.h1, d.htmlTitle)
}

func (d pageData) price() string {
	return firstNonEmpty(d.metaPrice, d.ldPrice, d.itemPrice)
}

func (s *PageScraper) ExtractTitleAndPrice(ctx context.Context, link string) (ProductInfo, error) {
	data, err := s.scrape(ctx, link)
	if err != nil {
		return ProductInfo{}, err
	}

	title := data.title()
	if title == "" {
		return ProductInfo{}, fmt.Errorf("%w: no title found on %s", ErrAgent, link)
	}

	price, err := pagePrice(data, link)
	if err != nil {
		return ProductInfo{}, err
	}

	return ProductInfo{Title: title, Price: price}, nil
}

func (s *PageScraper) ExtractPrice(ctx context.Context, link string) (decimal.Decimal, error) {
	data, err := s.scrape(ctx, link)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return pagePrice(data, link)
}

func (s *PageScraper) SearchOffers(context.Context, string, string, int) ([]model.Offer, error) {
	return nil, fmt.Errorf("%w: page scraper search: %w", ErrAgent, ErrUnsupported)
}

func pagePrice(data pageData, link string) (decimal.Decimal, error) {
	raw := data.price()
	if raw == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: no price found on %s", ErrAgent, link)
	}

	price, err := parsePriceText(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrAgent, err)
	}

	return price, nil
}

func (s *PageScraper) scrape(ctx context.Context, link string) (pageData, error) {
	ctx, span := tracer.Start(ctx, "PageScraper.scrape")
	defer span.End()

	c := colly.NewCollector(
		colly.UserAgent(s.userAgent),
		colly.StdlibContext(ctx),
	)
	if s.timeout > 0 {
		c.SetRequestTimeout(s.timeout)
	}

	var data pageData

	c.OnHTML(`meta[property="og:title"]`, func(e *colly.HTMLElement) {
		setOnce(&data.ogTitle, e.Attr("content"))
	})
	c.OnHTML("h1", func(e *colly.HTMLElement) {
		setOnce(&data.h1, e.Text)
	})
	c.OnHTML("head > title", func(e *colly.HTMLElement) {
		setOnce(&data.htmlTitle, e.Text)
	})
	c.OnHTML(`meta[property="product:price:amount"], meta[property="og:price:amount"]`, func(e *colly.HTMLElement) {
		setOnce(&data.metaPrice, e.Attr("content"))
	})
	c.OnHTML(`[itemprop="price"]`, func(e *colly.HTMLElement) {
		v := e.Attr("content")
		if v == "" {
			v = e.Text
		}
		setOnce(&data.itemPrice, v)
	})
	c.OnHTML(`script[type="application/ld+json"]`, func(e *colly.HTMLElement) {
		name, price := parseJSONLDProduct([]byte(e.Text))
		setOnce(&data.ldTitle, name)
		setOnce(&data.ldPrice, price)
	})

	if err := c.Visit(link); err != nil {
		return pageData{}, spanError(span, fmt.Errorf("%w: visit %s: %w", ErrAgent, link, err))
	}

	return data, nil
}

// parseJSONLDProduct finds the first schema.org Product in a JSON-LD
// document and returns its name and first offer price.
func parseJSONLDProduct(raw []byte) (name, price string) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", ""
	}

	var walk func(v any) bool
	walk = func(v any) bool {
		switch node := v.(type) {
		case []any:
			for _, item := range node {
				if walk(item) {
					return true
				}
			}
		case map[string]any:
			if isJSONLDType(node["@type"], "Product") {
				name, _ = node["name"].(string)
				price = jsonLDOfferPrice(node["offers"])
				return true
			}
			if graph, ok := node["@graph"]; ok {
				return walk(graph)
			}
		}
		return false
	}
	walk(doc)

	return strings.TrimSpace(name), price
}

func jsonLDOfferPrice(v any) string {
	switch offers := v.(type) {
	case []any:
		for _, o := range offers {
			if p := jsonLDOfferPrice(o); p != "" {
				return p
			}
		}
	case map[string]any:
		for _, key := range []string{"price", "lowPrice"} {
			switch p := offers[key].(type) {
			case string:
				return p
			case json.Number:
				return p.String()
			}
		}
	}
	return ""
}

func isJSONLDType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func setOnce(dst *string, v string) {
	if *dst == "" {
		*dst = strings.TrimSpace(v)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
