// Package pathutil provides URL path normalization for metrics labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance (<1μs per operation).
var pathPatterns = []*PathPattern{
	// Summary lookup by URL fingerprint (hex digest)
	{Pattern: regexp.MustCompile(`^/summaries/[0-9a-fA-F]+$`), Template: "/summaries/:hash"},

	// Headline routes with category segments
	{Pattern: regexp.MustCompile(`^/headlines/[a-z]+$`), Template: "/headlines/:category"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths containing URL fingerprints (e.g., /summaries/9f86d081) to template
// format (e.g., /summaries/:hash). Static paths remain unchanged.
//
// Performance: <1μs per operation (pre-compiled regex patterns)
//
// Examples:
//
//	NormalizePath("/summaries/9f86d081")    // "/summaries/:hash"
//	NormalizePath("/summaries/stats")       // "/summaries/stats" (unchanged)
//	NormalizePath("/headlines")             // "/headlines" (unchanged)
//	NormalizePath("/headlines/technology")  // "/headlines/:category"
//	NormalizePath("/health")                // "/health" (unchanged)
//	NormalizePath("/metrics")               // "/metrics" (unchanged)
//	NormalizePath("/unknown/path/123")      // "/unknown/path/123" (no match, return original)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/headlines?category=x")  // "/headlines"
//	NormalizePath("/summaries/9f86d081/")   // "/summaries/:hash"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	// Try to match against known patterns
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path. Static paths like /health,
	// /metrics and /headlines pass through unchanged.
	return path
}
