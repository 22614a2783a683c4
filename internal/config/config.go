// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/skillmatch/internal/scoring"
)

// Config is the engine configuration, loadable from a JSON file with
// environment variables as fallback for secrets. All fields are optional;
// missing values use defaults.
type Config struct {
	// Scoring
	Weights          *scoring.Weights `json:"weights,omitempty"`           // sub-score weights, must sum to 1.0
	MandatoryPenalty float64          `json:"mandatory_penalty,omitempty"` // multiplier applied when a mandatory skill is missing (0-1]
	SimilarityBlend  float64          `json:"similarity_blend,omitempty"`  // share of the skill score from text similarity (0-1)
	MaxConcurrency   int              `json:"max_concurrency,omitempty"`   // scoring fan-out bound

	// Cache
	CacheMaxSize    int    `json:"cache_max_size,omitempty"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds,omitempty"`
	ConfigVersion   string `json:"config_version,omitempty"` // bump to invalidate all cached results

	// Providers
	APIKey                 string `json:"api_key,omitempty"` // Gemini API key; GEMINI_API_KEY env wins when set
	ProviderTimeoutSeconds int    `json:"provider_timeout_seconds,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty means in-memory

	// Behavior
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
	Verbose  bool   `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	return cfg
}

// applyEnv fills secret fields from the environment. Environment values
// take precedence so deployments never need keys in config files.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" && c.DatabaseURL == "" {
		c.DatabaseURL = v
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.MandatoryPenalty < 0 || c.MandatoryPenalty > 1 {
		return fmt.Errorf("config error: 'mandatory_penalty' must be within [0, 1]")
	}
	if c.SimilarityBlend < 0 || c.SimilarityBlend > 1 {
		return fmt.Errorf("config error: 'similarity_blend' must be within [0, 1]")
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("config error: 'max_concurrency' must be non-negative")
	}
	if c.CacheMaxSize < 0 {
		return fmt.Errorf("config error: 'cache_max_size' must be non-negative")
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("config error: 'cache_ttl_seconds' must be non-negative")
	}
	if c.ProviderTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'provider_timeout_seconds' must be non-negative")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}
	return nil
}

// EffectiveWeights returns the configured weights or the default preset.
func (c *Config) EffectiveWeights() scoring.Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	return scoring.DefaultWeights()
}

// ScorerOptions maps the configuration onto scorer options, filling
// defaults for unset fields.
func (c *Config) ScorerOptions() scoring.Options {
	opts := scoring.DefaultOptions()
	if c.MandatoryPenalty > 0 {
		opts.MandatoryPenalty = c.MandatoryPenalty
	}
	if c.SimilarityBlend > 0 {
		opts.TextSimilarityBlend = c.SimilarityBlend
	}
	if c.MaxConcurrency > 0 {
		opts.MaxConcurrency = c.MaxConcurrency
	}
	return opts
}

// CacheTTL returns the configured TTL as a duration, zero when unset.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// ProviderTimeout returns the per-attempt provider timeout, zero when unset.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}
