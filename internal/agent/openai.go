package agent

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/price-tracker/internal/model"
)

const (
	titleAndPricePrompt = `Open this product page: %s
Extract:
- exact product title
- current price (number only)
Return JSON: {"title": "...", "price": 123.45}`

	pricePrompt = `Open this product page: %s
Return JSON: {"price": 123.45}`

	searchPrompt = `Find up to %d online offers for the product "%s" in %s.
Return ONLY JSON like:
{"offers": [{"title": "Shop A", "link": "https://...", "price": 99.99}]}`
)

type OpenAIConfig struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a compatible gateway.
	BaseURL string
	Model   string
	Timeout time.Duration
}

var _ Agent = (*OpenAI)(nil)

// OpenAI answers every operation with a single chat completion in JSON mode.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (a *OpenAI) ExtractTitleAndPrice(ctx context.Context, link string) (ProductInfo, error) {
	ctx, span := tracer.Start(ctx, "OpenAI.ExtractTitleAndPrice", trace.WithAttributes(attribute.String("link", link)))
	defer span.End()

	content, err := a.complete(ctx, fmt.Sprintf(titleAndPricePrompt, link))
	if err != nil {
		return ProductInfo{}, spanError(span, err)
	}

	info, err := parseTitleAndPrice(content)
	if err != nil {
		return ProductInfo{}, spanError(span, err)
	}

	return info, nil
}

func (a *OpenAI) ExtractPrice(ctx context.Context, link string) (decimal.Decimal, error) {
	ctx, span := tracer.Start(ctx, "OpenAI.ExtractPrice", trace.WithAttributes(attribute.String("link", link)))
	defer span.End()

	content, err := a.complete(ctx, fmt.Sprintf(pricePrompt, link))
	if err != nil {
		return decimal.Decimal{}, spanError(span, err)
	}

	price, err := parsePrice(content)
	if err != nil {
		return decimal.Decimal{}, spanError(span, err)
	}

	return price, nil
}

func (a *OpenAI) SearchOffers(ctx context.Context, title, country string, limit int) ([]model.Offer, error) {
	ctx, span := tracer.Start(ctx, "OpenAI.SearchOffers", trace.WithAttributes(
		attribute.String("title", title),
		attribute.String("country", country),
	))
	defer span.End()

	content, err := a.complete(ctx, fmt.Sprintf(searchPrompt, limit, title, country))
	if err != nil {
		return nil, spanError(span, err)
	}

	offers, err := parseOffers(content, limit)
	if err != nil {
		return nil, spanError(span, err)
	}

	span.SetAttributes(attribute.Int("offers", len(offers)))
	return offers, nil
}

func (a *OpenAI) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: create chat completion: %w", ErrAgent, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: chat completion has no choices", ErrAgent)
	}

	return resp.Choices[0].Message.Content, nil
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
