// Package config loads application-level configuration from an optional YAML
// file plus environment overrides. Component-specific settings (provider,
// fetcher, worker) are loaded by their own packages; this file covers the
// knobs shared across the process: server address, cache TTLs, summary
// policy, and the category set the worker prefetches.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML duration strings
// such as "30s" or "10m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Server struct {
		// Addr the API server listens on. Default: ":8080"
		Addr string `yaml:"addr"`
		// RequestTimeout bounds a single request. Default: 30s
		RequestTimeout Duration `yaml:"request_timeout"`
	} `yaml:"server"`

	Cache struct {
		// SummaryTTL controls how long computed summaries are kept.
		// Default: 24h
		SummaryTTL Duration `yaml:"summary_ttl"`
		// HeadlinesTTL controls how long headline pages are kept.
		// Default: 10m
		HeadlinesTTL Duration `yaml:"headlines_ttl"`
	} `yaml:"cache"`

	Summary struct {
		// MinSourceWords gates extractive summarization; shorter texts fall
		// back to the provider description. Default: 200
		MinSourceWords int `yaml:"min_source_words"`
		// Placeholder served when no summary can be produced.
		Placeholder string `yaml:"placeholder"`
	} `yaml:"summary"`

	Prefetch struct {
		// Categories warmed by the worker. Empty means all supported
		// categories.
		Categories []string `yaml:"categories"`
	} `yaml:"prefetch"`
}

// DefaultAppConfig returns the configuration used when no file or overrides
// are present.
func DefaultAppConfig() *AppConfig {
	cfg := &AppConfig{}
	cfg.Server.Addr = ":8080"
	cfg.Server.RequestTimeout = Duration(30 * time.Second)
	cfg.Cache.SummaryTTL = Duration(24 * time.Hour)
	cfg.Cache.HeadlinesTTL = Duration(10 * time.Minute)
	cfg.Summary.MinSourceWords = 200
	return cfg
}

// LoadAppConfig builds the application configuration in three layers:
// defaults, then the YAML file named by CONFIG_FILE (if any), then direct
// environment overrides. A missing CONFIG_FILE variable is not an error; a
// named file that cannot be read or parsed is.
func LoadAppConfig() (*AppConfig, error) {
	cfg := DefaultAppConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		// #nosec G304 -- path comes from the deployment environment, not user input
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid application configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies direct environment overrides on top of whatever
// the file provided. Unparseable values are ignored so a bad override cannot
// take the server down.
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.RequestTimeout = Duration(d)
		}
	}
	if v := os.Getenv("SUMMARY_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.SummaryTTL = Duration(d)
		}
	}
	if v := os.Getenv("HEADLINES_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.HeadlinesTTL = Duration(d)
		}
	}
	if v := os.Getenv("SUMMARY_MIN_WORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Summary.MinSourceWords = n
		}
	}
	if v := os.Getenv("SUMMARY_PLACEHOLDER"); v != "" {
		cfg.Summary.Placeholder = v
	}
}

// Validate checks configuration correctness.
func (c *AppConfig) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.Cache.SummaryTTL <= 0 {
		return fmt.Errorf("summary_ttl must be positive")
	}
	if c.Cache.HeadlinesTTL <= 0 {
		return fmt.Errorf("headlines_ttl must be positive")
	}
	if c.Summary.MinSourceWords <= 0 {
		return fmt.Errorf("min_source_words must be positive")
	}
	return nil
}
