// Package middleware provides cross-cutting HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins.
	// Example: ["http://localhost:3000", "https://reader.example.com"]
	AllowedOrigins []string

	// AllowedMethods specifies which HTTP methods are allowed in CORS requests.
	// Default: ["GET", "POST", "OPTIONS"]
	AllowedMethods []string

	// AllowedHeaders specifies which request headers are allowed in CORS requests.
	// Default: ["Content-Type", "Authorization", "X-Request-ID"]
	AllowedHeaders []string

	// AllowCredentials indicates whether credentials (cookies, authorization
	// headers) are supported. Must be true for JWT Bearer token authentication.
	AllowCredentials bool

	// MaxAge specifies how long preflight results can be cached, in seconds.
	// Default: 86400 (24 hours)
	MaxAge int

	// Logger receives a warning for each rejected origin. Optional.
	Logger *slog.Logger
}

// LoadCORSConfig loads CORS configuration from environment variables.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: comma-separated origin whitelist (required to enable CORS)
//   - CORS_ALLOWED_METHODS: comma-separated methods (optional)
//   - CORS_ALLOWED_HEADERS: comma-separated headers (optional)
//   - CORS_MAX_AGE: preflight cache duration in seconds (optional)
func LoadCORSConfig() *CORSConfig {
	cfg := &CORSConfig{
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitAndTrim(origins)
	}
	if methods := os.Getenv("CORS_ALLOWED_METHODS"); methods != "" {
		cfg.AllowedMethods = splitAndTrim(methods)
	}
	if headers := os.Getenv("CORS_ALLOWED_HEADERS"); headers != "" {
		cfg.AllowedHeaders = splitAndTrim(headers)
	}
	if maxAge := os.Getenv("CORS_MAX_AGE"); maxAge != "" {
		if v, err := strconv.Atoi(maxAge); err == nil && v >= 0 {
			cfg.MaxAge = v
		}
	}

	return cfg
}

// CORS returns an HTTP middleware that handles cross-origin requests.
//
// Behavior:
//   - If the Origin header is empty, skip CORS processing (same-origin request)
//   - If the Origin is not allowed, log a warning and continue without CORS headers
//   - For allowed preflight (OPTIONS) requests, set the full header set and
//     return 204 No Content without calling the next handler
//   - For allowed actual requests, set Allow-Origin and Allow-Credentials and
//     pass through
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(config.AllowedOrigins, origin) {
				if config.Logger != nil {
					config.Logger.Warn("cors origin rejected",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
					)
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			// Origin-dependent responses must not be cached across origins.
			w.Header().Add("Vary", "Origin")
			if config.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
