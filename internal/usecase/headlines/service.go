// Package headlines provides the use case for serving news headlines.
// It fronts the quota-limited provider API with a TTL cache so repeated
// reads of the same category cost one provider request per cache window.
package headlines

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsbrief/internal/domain/entity"
)

// Sentinel errors for headlines use case operations.
var (
	// ErrInvalidCategory indicates the requested category is not one the
	// provider supports.
	ErrInvalidCategory = errors.New("invalid headline category")

	// ErrEmptyQuery indicates a search was requested without a query.
	ErrEmptyQuery = errors.New("search query is required")
)

// Categories lists the provider-supported headline categories.
var Categories = []string{
	"general", "world", "nation", "business", "technology",
	"entertainment", "sports", "science", "health",
}

// Provider fetches articles from the upstream news API.
type Provider interface {
	TopHeadlines(ctx context.Context, category string) ([]entity.Article, error)
	Search(ctx context.Context, query string) ([]entity.Article, error)
}

// Cache stores headline pages keyed by category or query.
type Cache interface {
	Get(key string) ([]entity.Article, bool)
	Set(key string, articles []entity.Article)
}

// Service serves headline pages with caching.
type Service struct {
	Provider Provider
	Cache    Cache
}

// NewService creates a headlines Service. Cache can be nil to disable
// caching, which is only sensible in tests.
func NewService(provider Provider, cache Cache) *Service {
	return &Service{Provider: provider, Cache: cache}
}

// Top returns the current top headlines for a category. An empty category
// means the provider's general feed.
// Returns ErrInvalidCategory for categories the provider does not support.
func (s *Service) Top(ctx context.Context, category string) ([]entity.Article, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && !validCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}

	key := "headlines:" + category
	if s.Cache != nil {
		if articles, ok := s.Cache.Get(key); ok {
			return articles, nil
		}
	}

	articles, err := s.Provider.TopHeadlines(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	if s.Cache != nil {
		s.Cache.Set(key, articles)
	}
	return articles, nil
}

// Search returns articles matching the query.
// Returns ErrEmptyQuery when the query is blank.
func (s *Service) Search(ctx context.Context, query string) ([]entity.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	key := "search:" + strings.ToLower(query)
	if s.Cache != nil {
		if articles, ok := s.Cache.Get(key); ok {
			return articles, nil
		}
	}

	articles, err := s.Provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search headlines: %w", err)
	}

	if s.Cache != nil {
		s.Cache.Set(key, articles)
	}
	return articles, nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
