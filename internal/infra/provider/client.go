// Package provider implements the client for the upstream news API.
// It fetches top headlines and search results, normalizes them into domain
// articles, and guards the upstream with a rate limiter, a daily quota
// counter, retry, and a circuit breaker.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/resilience/circuitbreaker"
	"newsbrief/internal/resilience/retry"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client is a news provider API client.
//
// Thread safety: Client is safe for concurrent use.
type Client struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	quota   *QuotaCounter
}

// NewClient creates a provider client with the given configuration.
// The configuration must already be validated.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		breaker: circuitbreaker.New(circuitbreaker.ProviderAPIConfig()),
		quota:   NewQuotaCounter(cfg.DailyQuota),
	}
}

// QuotaRemaining returns how many provider requests are left today, or -1
// when quota tracking is disabled.
func (c *Client) QuotaRemaining() int {
	return c.quota.Remaining()
}

// TopHeadlines fetches the current top headlines. Category is optional;
// when empty the provider's general feed is returned.
func (c *Client) TopHeadlines(ctx context.Context, category string) ([]entity.Article, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	articles, err := c.fetch(ctx, "/top-headlines", params)
	if err != nil {
		return nil, fmt.Errorf("top headlines: %w", err)
	}
	for i := range articles {
		articles[i].Category = category
	}
	return articles, nil
}

// Search fetches articles matching the given query.
func (c *Client) Search(ctx context.Context, query string) ([]entity.Article, error) {
	if query == "" {
		return nil, fmt.Errorf("search: query is required")
	}
	params := url.Values{}
	params.Set("q", query)
	articles, err := c.fetch(ctx, "/search", params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return articles, nil
}

// apiResponse mirrors the provider's JSON envelope.
type apiResponse struct {
	TotalArticles int          `json:"totalArticles"`
	Articles      []apiArticle `json:"articles"`
}

type apiArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Image       string    `json:"image"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}

// fetch performs one provider request: rate limit, quota check, then the
// HTTP call through retry and the circuit breaker.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]entity.Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if err := c.quota.Acquire(); err != nil {
		return nil, err
	}

	params.Set("lang", c.cfg.Language)
	params.Set("max", fmt.Sprintf("%d", c.cfg.MaxArticles))
	params.Set("apikey", c.cfg.APIKey)
	reqURL := c.cfg.BaseURL + path + "?" + params.Encode()

	var body []byte
	err := retry.WithBackoff(ctx, retry.ProviderAPIConfig(), func() error {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.doRequest(ctx, reqURL)
		})
		if err != nil {
			return err
		}
		body = result.([]byte)
		return nil
	})
	if err != nil {
		return nil, err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return normalize(resp.Articles), nil
}

// doRequest executes a single HTTP request and returns the raw body.
// Non-2xx responses become retry.HTTPError so the retry layer can tell
// transient failures from permanent ones.
func (c *Client) doRequest(ctx context.Context, reqURL string) (interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsBriefBot/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{StatusCode: resp.StatusCode, Message: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// normalize converts provider entries into domain articles. Entries without
// a title or URL are dropped; the provider occasionally emits them for
// removed stories.
func normalize(items []apiArticle) []entity.Article {
	articles := make([]entity.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.URL == "" {
			continue
		}
		articles = append(articles, entity.Article{
			ID:          uuid.NewString(),
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			ImageURL:    item.Image,
			Source:      item.Source.Name,
			SourceURL:   item.URL,
			PublishedAt: item.PublishedAt,
		})
	}
	return articles
}
