package model

import (
	"fmt"
	"time"
)

// Config holds the complete auditor configuration.
// Weights and thresholds are construction-time constants: the config is
// validated once at startup and treated as immutable afterwards.
type Config struct {
	Weights     Weights           `yaml:"weights"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Email       EmailConfig       `yaml:"email"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls page fetching.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig controls fetched-HTML caching.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
	Dir     string        `yaml:"dir"` // Disk cache directory ("" = memory only)
}

// ConcurrencyConfig controls parallelism and politeness.
type ConcurrencyConfig struct {
	BatchWorkers      int     `yaml:"batch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"` // Per-domain fetch rate
	Burst             int     `yaml:"burst"`
}

// LLMConfig controls the optional AI recommendation provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, "" = disabled
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// EmailConfig controls SMTP report delivery.
type EmailConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"-"` // From environment only, never persisted
	From     string `yaml:"from"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights: DefaultWeights(),
		HTTP: HTTPConfig{
			Timeout:      2 * time.Minute,
			UserAgent:    "Web4All/0.1 (+https://github.com/web4all/web4all)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:      4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
		Email: EmailConfig{
			Port: 587,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// Validate checks the configuration for fatal errors. A weight table that
// does not cover every category or does not sum to exactly 100 is a
// startup error, not a per-audit condition.
func (c *Config) Validate() error {
	for _, cat := range Categories() {
		w, ok := c.Weights[cat]
		if !ok {
			return fmt.Errorf("config: missing weight for category %q", cat)
		}
		if w < 0 {
			return fmt.Errorf("config: negative weight %d for category %q", w, cat)
		}
	}
	if len(c.Weights) != len(Categories()) {
		return fmt.Errorf("config: weight table has %d entries, want %d", len(c.Weights), len(Categories()))
	}
	if sum := c.Weights.Sum(); sum != 100 {
		return fmt.Errorf("config: weights sum to %d, want 100", sum)
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive")
	}
	if c.Concurrency.BatchWorkers <= 0 {
		return fmt.Errorf("config: batch_workers must be positive")
	}
	return nil
}
