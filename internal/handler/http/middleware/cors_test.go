package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"newsbrief/internal/handler/http/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func testConfig() middleware.CORSConfig {
	return middleware.CORSConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://reader.example.com"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

func TestCORS_SameOriginRequest(t *testing.T) {
	handler := middleware.CORS(testConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/headlines", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no CORS headers for same-origin request, got Allow-Origin=%q", got)
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := middleware.CORS(testConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/headlines", nil)
	req.Header.Set("Origin", "https://reader.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://reader.example.com" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Allow-Credentials = %q", got)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q", got)
	}
}

func TestCORS_RejectedOrigin(t *testing.T) {
	handler := middleware.CORS(testConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/headlines", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Request still reaches the handler; the browser enforces the missing headers.
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("expected no Allow-Origin for rejected origin, got %q", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := middleware.CORS(testConfig())(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/summaries", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
		t.Errorf("Allow-Headers = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "86400" {
		t.Errorf("Max-Age = %q", got)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("preflight response should have no body, got %q", rec.Body.String())
	}
}

func TestCORS_PreflightRejectedOrigin(t *testing.T) {
	handler := middleware.CORS(testConfig())(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/summaries", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Falls through to the handler without CORS headers.
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "" {
		t.Errorf("expected no Allow-Methods for rejected preflight, got %q", got)
	}
}

func TestLoadCORSConfig_Defaults(t *testing.T) {
	cfg := middleware.LoadCORSConfig()

	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("expected empty origin whitelist by default, got %v", cfg.AllowedOrigins)
	}
	if cfg.MaxAge != 86400 {
		t.Errorf("MaxAge = %d, want 86400", cfg.MaxAge)
	}
	if !cfg.AllowCredentials {
		t.Error("AllowCredentials should default to true")
	}
}

func TestLoadCORSConfig_FromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://reader.example.com")
	t.Setenv("CORS_ALLOWED_METHODS", "GET,POST")
	t.Setenv("CORS_MAX_AGE", "3600")

	cfg := middleware.LoadCORSConfig()

	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[1] != "https://reader.example.com" {
		t.Errorf("origins not trimmed: %v", cfg.AllowedOrigins)
	}
	if len(cfg.AllowedMethods) != 2 {
		t.Errorf("AllowedMethods = %v", cfg.AllowedMethods)
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", cfg.MaxAge)
	}
}

func TestLoadCORSConfig_InvalidMaxAge(t *testing.T) {
	t.Setenv("CORS_MAX_AGE", "not-a-number")

	cfg := middleware.LoadCORSConfig()

	if cfg.MaxAge != 86400 {
		t.Errorf("invalid CORS_MAX_AGE should keep the default, got %d", cfg.MaxAge)
	}
}
