package agent_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/price-tracker/internal/agent"
	"github.com/tuanvumaihuynh/price-tracker/internal/config"
)

func TestNew(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := config.Agent{Timeout: time.Second, OpenAIModel: "gpt-4o-mini", ScraperUserAgent: "ua"}

	tests := []struct {
		name     string
		provider config.AgentProvider
		apiKey   string
		check    func(t *testing.T, a agent.Agent)
	}{
		{
			name:     "openai with key",
			provider: config.AgentProviderOpenAI,
			apiKey:   "sk-test",
			check: func(t *testing.T, a agent.Agent) {
				assert.IsType(t, &agent.OpenAI{}, a)
			},
		},
		{
			name:     "openai without key",
			provider: config.AgentProviderOpenAI,
			check: func(t *testing.T, a agent.Agent) {
				_, err := a.ExtractPrice(context.Background(), "https://x")
				assert.ErrorIs(t, err, agent.ErrAgent)
				assert.ErrorContains(t, err, "OPENAI_API_KEY")
			},
		},
		{
			name:     "scraper",
			provider: config.AgentProviderScraper,
			check: func(t *testing.T, a agent.Agent) {
				assert.IsType(t, &agent.PageScraper{}, a)
			},
		},
		{
			name:     "chain",
			provider: config.AgentProviderChain,
			apiKey:   "sk-test",
			check: func(t *testing.T, a agent.Agent) {
				chain, ok := a.(agent.Chain)
				require.True(t, ok)
				assert.Len(t, chain, 2)
			},
		},
		{
			name:     "static",
			provider: config.AgentProviderStatic,
			check: func(t *testing.T, a agent.Agent) {
				assert.IsType(t, &agent.Static{}, a)
			},
		},
		{
			name:     "unavailable",
			provider: config.AgentProviderUnavailable,
			check: func(t *testing.T, a agent.Agent) {
				assert.IsType(t, agent.Unavailable{}, a)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			cfg.Provider = tt.provider
			cfg.OpenAIAPIKey = tt.apiKey

			a, err := agent.New(cfg, logger)
			require.NoError(t, err)
			tt.check(t, a)
		})
	}

	_, err := agent.New(config.Agent{Provider: "carrier-pigeon"}, logger)
	assert.Error(t, err)
}
