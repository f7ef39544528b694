package provider

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the news provider client.
type Config struct {
	// BaseURL is the provider API root.
	// Default: https://gnews.io/api/v4
	BaseURL string

	// APIKey authenticates requests. Required.
	APIKey string

	// Language restricts headlines to one language code.
	// Default: "en"
	Language string

	// MaxArticles is the page size requested from the provider.
	// Default: 10
	MaxArticles int

	// Timeout is the maximum duration for a single API request.
	// Default: 10s
	Timeout time.Duration

	// DailyQuota is the provider's daily request allowance. Zero disables
	// quota tracking.
	// Default: 100 (free tier)
	DailyQuota int

	// RequestsPerSecond caps the outgoing request rate.
	// Default: 1
	RequestsPerSecond float64
}

// DefaultConfig returns the provider configuration for the free tier.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://gnews.io/api/v4",
		Language:          "en",
		MaxArticles:       10,
		Timeout:           10 * time.Second,
		DailyQuota:        100,
		RequestsPerSecond: 1,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.MaxArticles < 1 || c.MaxArticles > 100 {
		return fmt.Errorf("max articles must be between 1 and 100, got %d", c.MaxArticles)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %v", c.RequestsPerSecond)
	}
	return nil
}

// LoadConfigFromEnv loads provider configuration from environment variables.
//
// Environment variables:
//   - NEWS_API_KEY: API key (required)
//   - NEWS_API_BASE_URL: API root (default: https://gnews.io/api/v4)
//   - NEWS_API_LANG: language code (default: en)
//   - NEWS_API_MAX_ARTICLES: page size (default: 10)
//   - NEWS_API_TIMEOUT: duration string (default: 10s)
//   - NEWS_API_DAILY_QUOTA: daily request allowance (default: 100)
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.APIKey = os.Getenv("NEWS_API_KEY")

	if val := os.Getenv("NEWS_API_BASE_URL"); val != "" {
		cfg.BaseURL = val
	}

	if val := os.Getenv("NEWS_API_LANG"); val != "" {
		cfg.Language = val
	}

	if val := os.Getenv("NEWS_API_MAX_ARTICLES"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cfg.MaxArticles = parsed
		} else {
			return cfg, fmt.Errorf("invalid NEWS_API_MAX_ARTICLES: %v", err)
		}
	}

	if val := os.Getenv("NEWS_API_TIMEOUT"); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			cfg.Timeout = parsed
		} else {
			return cfg, fmt.Errorf("invalid NEWS_API_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
	}

	if val := os.Getenv("NEWS_API_DAILY_QUOTA"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cfg.DailyQuota = parsed
		} else {
			return cfg, fmt.Errorf("invalid NEWS_API_DAILY_QUOTA: %v", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
