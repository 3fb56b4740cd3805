package agent

import (
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/price-tracker/internal/config"
)

// New builds the agent selected by cfg.Provider.
func New(cfg config.Agent, logger *slog.Logger) (Agent, error) {
	newOpenAI := func() Agent {
		if cfg.OpenAIAPIKey == "" {
			logger.Warn("OPENAI_API_KEY is not set, llm extraction is unavailable")
			return Unavailable{Reason: "OPENAI_API_KEY is not set"}
		}
		return NewOpenAI(OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.Timeout,
		})
	}

	switch cfg.Provider {
	case config.AgentProviderOpenAI:
		return newOpenAI(), nil
	case config.AgentProviderScraper:
		return NewPageScraper(cfg.ScraperUserAgent, cfg.Timeout), nil
	case config.AgentProviderChain:
		return Chain{NewPageScraper(cfg.ScraperUserAgent, cfg.Timeout), newOpenAI()}, nil
	case config.AgentProviderStatic:
		logger.Warn("using static extraction agent, prices are fake")
		return NewStatic(), nil
	case config.AgentProviderUnavailable:
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown agent provider: %q", cfg.Provider)
	}
}
