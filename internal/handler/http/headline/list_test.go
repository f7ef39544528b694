package headline_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/handler/http/headline"
	"newsbrief/internal/infra/provider"
	headlinesUC "newsbrief/internal/usecase/headlines"
)

type stubProvider struct {
	articles     []entity.Article
	err          error
	lastCategory string
	lastQuery    string
}

func (s *stubProvider) TopHeadlines(_ context.Context, category string) ([]entity.Article, error) {
	s.lastCategory = category
	return s.articles, s.err
}

func (s *stubProvider) Search(_ context.Context, query string) ([]entity.Article, error) {
	s.lastQuery = query
	return s.articles, s.err
}

func sampleArticles() []entity.Article {
	return []entity.Article{
		{
			ID:          "a1",
			Title:       "First Headline",
			Description: "Something happened.",
			Source:      "Example Times",
			Category:    "technology",
			PublishedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:    "a2",
			Title: "Second Headline",
		},
	}
}

func newHandler(p *stubProvider) headline.ListHandler {
	return headline.ListHandler{Svc: headlinesUC.NewService(p, nil)}
}

func TestListHandler_DefaultCategory(t *testing.T) {
	p := &stubProvider{articles: sampleArticles()}
	handler := newHandler(p)

	req := httptest.NewRequest(http.MethodGet, "/headlines", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if p.lastCategory != "general" {
		t.Errorf("category = %q, want general", p.lastCategory)
	}

	var resp struct {
		Articles []struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			PublishedAt string `json:"published_at"`
		} `json:"articles"`
		Count int `json:"count"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Count != 2 {
		t.Errorf("Count = %d, want 2", resp.Count)
	}
	if resp.Articles[0].Title != "First Headline" {
		t.Errorf("Articles[0].Title = %q", resp.Articles[0].Title)
	}
	if resp.Articles[0].PublishedAt != "2026-08-30T12:00:00Z" {
		t.Errorf("Articles[0].PublishedAt = %q", resp.Articles[0].PublishedAt)
	}
	// Zero publish time should be omitted, not rendered as year one.
	if resp.Articles[1].PublishedAt != "" {
		t.Errorf("Articles[1].PublishedAt = %q, want empty", resp.Articles[1].PublishedAt)
	}
}

func TestListHandler_CategoryParameter(t *testing.T) {
	p := &stubProvider{articles: sampleArticles()}
	handler := newHandler(p)

	req := httptest.NewRequest(http.MethodGet, "/headlines?category=science", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if p.lastCategory != "science" {
		t.Errorf("category = %q, want science", p.lastCategory)
	}
}

func TestListHandler_Search(t *testing.T) {
	p := &stubProvider{articles: sampleArticles()}
	handler := newHandler(p)

	req := httptest.NewRequest(http.MethodGet, "/headlines?q=fusion+energy", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}
	if p.lastQuery != "fusion energy" {
		t.Errorf("query = %q, want %q", p.lastQuery, "fusion energy")
	}
	if p.lastCategory != "" {
		t.Errorf("search must not hit the category path, got category %q", p.lastCategory)
	}
}

func TestListHandler_InvalidCategory(t *testing.T) {
	handler := newHandler(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/headlines?category=gossip", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestListHandler_QuotaExceeded(t *testing.T) {
	handler := newHandler(&stubProvider{err: provider.ErrQuotaExceeded})

	req := httptest.NewRequest(http.MethodGet, "/headlines?category=technology", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusServiceUnavailable)
	}
}

func TestListHandler_ProviderError(t *testing.T) {
	handler := newHandler(&stubProvider{err: errors.New("upstream exploded")})

	req := httptest.NewRequest(http.MethodGet, "/headlines", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("status code = %d, want %d", rr.Code, http.StatusBadGateway)
	}
}

func TestListHandler_EmptyResult(t *testing.T) {
	handler := newHandler(&stubProvider{articles: []entity.Article{}})

	req := httptest.NewRequest(http.MethodGet, "/headlines", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status code = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp struct {
		Articles []json.RawMessage `json:"articles"`
		Count    int               `json:"count"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
	if resp.Articles == nil {
		t.Error("articles should encode as [] rather than null")
	}
}
