// Package audit owns the reasoning-service boundary: it builds the forensic
// prompt, calls a provider, and validates every response against the fixed
// risk-assessment schema before anything flows downstream.
package audit

import "context"

// Provider defines the interface for reasoning-service backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one request and returns the raw model output.
	// Implementations apply their own per-call timeout on top of ctx.
	Complete(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Request is one outbound call to the reasoning service
type Request struct {
	// System is the fixed instruction context (role, schema, rules)
	System string

	// Prompt is the user-turn content: excerpt, figures, threshold
	Prompt string

	// Model overrides the configured model when non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Response is the raw reasoning-service output before schema validation
type Response struct {
	Content    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, API-compatible gateways)
	BaseURL string

	// Timeout per outbound call, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Model:     "",
		Timeout:   60,
		MaxTokens: 2000,
	}
}
