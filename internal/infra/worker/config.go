package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newsbrief/internal/pkg/config"
)

// WorkerConfig holds the configuration for the prefetch worker.
// This configuration controls the cron schedule, timezone, prefetch limits,
// and other operational parameters for the worker service.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
//
// All fields have sensible defaults and validation rules to ensure
// the worker can operate safely even with invalid or missing configuration.
type WorkerConfig struct {
	// CronSchedule is the cron expression for prefetch scheduling.
	// Format: "minute hour day month weekday"
	// Example: "0 */3 * * *" (every 3 hours)
	// Validation: Must be a valid cron expression (5 fields)
	// Default: "0 */3 * * *"
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Example: "UTC", "Asia/Tokyo", "America/New_York"
	// Validation: Must be a valid IANA timezone name
	// Default: "UTC"
	Timezone string

	// MaxConcurrent is the maximum number of categories fetched in parallel.
	// The provider rate limiter still applies on top of this.
	// Range: 1-10
	// Default: 3
	MaxConcurrent int

	// PrefetchTimeout is the maximum duration for one full prefetch cycle.
	// After this timeout, the remaining category fetches are cancelled.
	// Range: 30s-30m
	// Default: 5 minutes
	PrefetchTimeout time.Duration

	// HealthPort is the port number for the health check HTTP server.
	// Range: 1024-65535 (avoid privileged ports)
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with sensible default values.
// The schedule is bounded by the provider's daily request quota: every
// 3 hours, 9 categories cost 72 requests a day, leaving headroom for
// interactive cache misses on the free tier. Tighten CRON_SCHEDULE only
// with a larger quota.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:    "0 */3 * * *",
		Timezone:        "UTC",
		MaxConcurrent:   3,
		PrefetchTimeout: 5 * time.Minute,
		HealthPort:      9091,
	}
}

// Validate checks if the configuration values are valid.
// If multiple fields are invalid, all errors are collected and returned together.
//
// Validation rules:
//   - CronSchedule: Must be a valid cron expression (validated by robfig/cron parser)
//   - Timezone: Must be a valid IANA timezone name (validated by time.LoadLocation)
//   - MaxConcurrent: Must be between 1 and 10 (inclusive)
//   - PrefetchTimeout: Must be positive (> 0)
//   - HealthPort: Must be between 1024 and 65535 (avoid privileged ports)
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}

	if err := config.ValidateIntRange(c.MaxConcurrent, 1, 10); err != nil {
		errors = append(errors, fmt.Errorf("max concurrent: %w", err))
	}

	if err := config.ValidatePositiveDuration(c.PrefetchTimeout); err != nil {
		errors = append(errors, fmt.Errorf("prefetch timeout: %w", err))
	}

	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}

	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// This function implements the fail-open strategy:
//  1. Start with DefaultConfig() as base
//  2. Load each field from environment variables
//  3. Validate each loaded value
//  4. If validation fails: use default value, log warning, increment metrics
//  5. Never return error - always return a valid configuration
//
// Environment variables:
//   - CRON_SCHEDULE: Cron expression (default: "0 */3 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - PREFETCH_MAX_CONCURRENT: Integer 1-10 (default: 3)
//   - PREFETCH_TIMEOUT: Duration string, e.g., "5m" (default: 5 minutes)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//
// Metrics updated:
//   - ValidationErrorsTotal: Incremented for each validation failure
//   - FallbacksTotal: Incremented for each fallback applied
//   - FallbackActive: Set to 1 if any fallback is active, 0 otherwise
//   - LoadTimestamp: Set to current time after successful load
//
// Returns:
//   - *WorkerConfig: Valid configuration (never nil)
//   - error: Always nil (fail-open strategy)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("cron_schedule")
		metrics.RecordFallback("cron_schedule", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "CronSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("PREFETCH_MAX_CONCURRENT", cfg.MaxConcurrent, func(v int) error {
		return config.ValidateIntRange(v, 1, 10)
	})
	cfg.MaxConcurrent = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("max_concurrent")
		metrics.RecordFallback("max_concurrent", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "MaxConcurrent"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvDuration("PREFETCH_TIMEOUT", cfg.PrefetchTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 30*time.Second, 30*time.Minute)
	})
	cfg.PrefetchTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("prefetch_timeout")
		metrics.RecordFallback("prefetch_timeout", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "PrefetchTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port", "default")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	// Always return valid config (fail-open strategy)
	return &cfg, nil
}
