package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "summary fingerprint", path: "/summaries/9f86d081884c7d65", want: "/summaries/:hash"},
		{name: "short fingerprint", path: "/summaries/abc123", want: "/summaries/:hash"},
		{name: "uppercase hex fingerprint", path: "/summaries/9F86D081", want: "/summaries/:hash"},
		{name: "stats endpoint stays static", path: "/summaries/stats", want: "/summaries/stats"},
		{name: "headline category", path: "/headlines/technology", want: "/headlines/:category"},
		{name: "headlines root", path: "/headlines", want: "/headlines"},
		{name: "health", path: "/health", want: "/health"},
		{name: "metrics", path: "/metrics", want: "/metrics"},
		{name: "root", path: "/", want: "/"},
		{name: "unknown path passes through", path: "/unknown/path/123", want: "/unknown/path/123"},
		{name: "query parameters stripped", path: "/headlines?category=science&q=mars", want: "/headlines"},
		{name: "query on dynamic path", path: "/summaries/9f86d081?verbose=1", want: "/summaries/:hash"},
		{name: "trailing slash stripped", path: "/summaries/9f86d081/", want: "/summaries/:hash"},
		{name: "trailing slash on static path", path: "/headlines/", want: "/headlines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizePath_CardinalityCollapse(t *testing.T) {
	// Many distinct fingerprints must collapse to one label.
	hashes := []string{"9f86d081", "60303ae2", "fd61a03a", "a4e624d6"}
	for _, h := range hashes {
		if got := NormalizePath("/summaries/" + h); got != "/summaries/:hash" {
			t.Errorf("NormalizePath(/summaries/%s) = %q, want /summaries/:hash", h, got)
		}
	}
}
