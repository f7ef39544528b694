package summaries_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsbrief/internal/handler/http/summaries"
	summaryUC "newsbrief/internal/usecase/summary"
)

type stubFetcher struct {
	text string
	err  error
}

func (s *stubFetcher) FetchContent(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

type stubSummarizer struct {
	out string
	err error
}

func (s *stubSummarizer) Summarize(_ context.Context, _ string) (string, error) {
	return s.out, s.err
}

// longText is comfortably above the minimum word gate.
func longText() string {
	return strings.Repeat("one two three four five six seven eight ", 40)
}

func newService(fetcher *stubFetcher, summarizer *stubSummarizer) *summaryUC.Service {
	return summaryUC.NewService(fetcher, summarizer, nil, nil, summaryUC.DefaultConfig())
}

func TestCreateHandler_Success(t *testing.T) {
	svc := newService(
		&stubFetcher{text: longText()},
		&stubSummarizer{out: "A concise extracted summary."},
	)
	handler := summaries.CreateHandler{Svc: svc}

	body := `{
		"url": "https://news.example.com/story",
		"title": "Story Title",
		"description": "Provider description."
	}`
	req := httptest.NewRequest(http.MethodPost, "/summaries", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		URLHash    string `json:"url_hash"`
		Summary    string `json:"summary"`
		Source     string `json:"source"`
		IsFallback bool   `json:"is_fallback"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Summary != "A concise extracted summary." {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if resp.Source != "generated" {
		t.Errorf("Source = %q, want generated", resp.Source)
	}
	if resp.IsFallback {
		t.Error("IsFallback = true, want false")
	}
	if resp.URLHash != summaryUC.Fingerprint("https://news.example.com/story") {
		t.Errorf("URLHash = %q does not match the URL fingerprint", resp.URLHash)
	}
}

func TestCreateHandler_DescriptionFallback(t *testing.T) {
	svc := newService(
		&stubFetcher{err: errors.New("fetch failed")},
		&stubSummarizer{out: "never used"},
	)
	handler := summaries.CreateHandler{Svc: svc}

	body := `{"url": "https://news.example.com/story", "description": "The provider blurb."}`
	req := httptest.NewRequest(http.MethodPost, "/summaries", strings.NewReader(body))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Summary    string `json:"summary"`
		Source     string `json:"source"`
		IsFallback bool   `json:"is_fallback"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Summary != "The provider blurb." {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if resp.Source != "description" {
		t.Errorf("Source = %q, want description", resp.Source)
	}
	if !resp.IsFallback {
		t.Error("IsFallback = false, want true")
	}
}

func TestCreateHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"url": `},
		{name: "missing url", body: `{"title": "No URL"}`},
		{name: "unsupported scheme", body: `{"url": "ftp://example.com/file"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&stubFetcher{text: longText()}, &stubSummarizer{out: "x"})
			handler := summaries.CreateHandler{Svc: svc}

			req := httptest.NewRequest(http.MethodPost, "/summaries", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}
