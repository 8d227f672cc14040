package model

import "time"

// Config is the complete Sentinel configuration tree.
// Values are layered: flags > SENTINEL_* env vars > config file > defaults.
type Config struct {
	Extract     ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	Audit       AuditConfig       `yaml:"audit" mapstructure:"audit"`
	Materiality MaterialityConfig `yaml:"materiality" mapstructure:"materiality"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ExtractConfig controls section extraction
type ExtractConfig struct {
	MaxExcerptChars int `yaml:"max_excerpt_chars" mapstructure:"max_excerpt_chars"` // Reasoning-service input budget
	MinPageScore    int `yaml:"min_page_score" mapstructure:"min_page_score"`       // Pages below this score are ignored
	PageChars       int `yaml:"page_chars" mapstructure:"page_chars"`               // Pseudo-page size for unpaginated input
}

// AuditConfig configures the reasoning-service boundary
type AuditConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // Always from environment, never persisted
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // Seconds per outbound call
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// MaterialityConfig holds the SEBI LODR Reg. 23 threshold rule: a related
// party transaction is material above the lower of an absolute cap and a
// percentage of annual consolidated turnover.
type MaterialityConfig struct {
	AbsoluteCapINR float64 `yaml:"absolute_cap_inr" mapstructure:"absolute_cap_inr"` // Default ₹1,000 crore
	TurnoverPct    float64 `yaml:"turnover_pct" mapstructure:"turnover_pct"`         // Default 0.10
	TurnoverINR    float64 `yaml:"turnover_inr" mapstructure:"turnover_inr"`         // 0 when unknown
}

// HTTPConfig configures remote filing fetches
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerHost  float64       `yaml:"rate_per_host" mapstructure:"rate_per_host"` // Requests per second per host
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig controls the audit-outcome cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the configuration used when nothing else is set
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MaxExcerptChars: 30000,
			MinPageScore:    3,
			PageChars:       3000,
		},
		Audit: AuditConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 2000,
		},
		Materiality: MaterialityConfig{
			AbsoluteCapINR: 1e10, // ₹1,000 crore
			TurnoverPct:    0.10,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Sentinel/0.1 (+https://github.com/sentinel-india/sentinel)",
			MaxBodyBytes: 20_000_000,
			RatePerHost:  1,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
