package config

import (
	"fmt"
	"strings"
	"time"
)

type Agent struct {
	Provider AgentProvider `env:"AGENT_PROVIDER" envDefault:"openai"`
	Timeout  time.Duration `env:"AGENT_TIMEOUT" envDefault:"45s"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	ScraperUserAgent string `env:"SCRAPER_USER_AGENT" envDefault:"Mozilla/5.0 (compatible; price-tracker/1.0)"`
}

// AgentProvider selects the extraction agent implementation.
type AgentProvider string

const (
	AgentProviderOpenAI      AgentProvider = "openai"
	AgentProviderScraper     AgentProvider = "scraper"
	AgentProviderChain       AgentProvider = "chain"
	AgentProviderStatic      AgentProvider = "static"
	AgentProviderUnavailable AgentProvider = "unavailable"
)

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *AgentProvider) UnmarshalText(text []byte) error {
	v := AgentProvider(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case AgentProviderOpenAI, AgentProviderScraper, AgentProviderChain, AgentProviderStatic, AgentProviderUnavailable:
		*p = v
		return nil
	default:
		return fmt.Errorf("unknown agent provider: %s", text)
	}
}
