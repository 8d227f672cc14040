package audit

import (
	"fmt"
	"strings"

	"github.com/sentinel-india/sentinel/internal/model"
)

// NewProvider creates a reasoning-service provider based on configuration
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.AuditConfig to audit.Config
func ConfigFromModel(cfg model.AuditConfig, http model.HTTPConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  http.HTTPProxy,
		HTTPSProxy: http.HTTPSProxy,
		NoProxy:    http.NoProxy,
	}
}
