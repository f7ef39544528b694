package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/repository"
	"newsbrief/internal/utils/text"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// DefaultMinSourceWords is the minimum word count the source text must
	// reach before the extractive pipeline runs. Shorter texts are usually
	// paywall stubs or cookie banners, so the provider description is a
	// better summary than anything extracted from them.
	DefaultMinSourceWords = 200

	// DefaultPlaceholder is served when neither extraction nor the provider
	// description yields any text.
	DefaultPlaceholder = "Summary unavailable. Open the article to read the full story."

	// logTimeout bounds the background summary log write.
	logTimeout = 10 * time.Second
)

// Prometheus metrics for the summary use case.
var (
	summaryServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_served_total",
			Help: "Summaries served, labeled by text source",
		},
		[]string{"source"},
	)

	summaryLogWriteTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_log_write_total",
			Help: "Background summary log writes by status",
		},
		[]string{"status"},
	)
)

// ContentFetcher retrieves readable article text for a URL.
// Implementations strip navigation, ads, and markup and return plain text.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Summarizer condenses article text into a short summary.
type Summarizer interface {
	Summarize(ctx context.Context, input string) (string, error)
}

// Cache stores computed summaries keyed by URL fingerprint.
type Cache interface {
	Get(key string) (entity.Summary, bool)
	Set(key string, s entity.Summary)
}

// Request carries one summarization request. URL is required; the remaining
// fields are optional provider-supplied data used as fallbacks.
type Request struct {
	URL         string
	Title       string
	Description string
	Content     string // provider-supplied body, often truncated
	UserID      string // empty for anonymous requests
}

// Config holds tunable policy settings for the summary service.
type Config struct {
	MinSourceWords int
	Placeholder    string
}

// DefaultConfig returns the default summary policy configuration.
func DefaultConfig() Config {
	return Config{
		MinSourceWords: DefaultMinSourceWords,
		Placeholder:    DefaultPlaceholder,
	}
}

// Service produces article summaries. For each request it checks the cache,
// retrieves the article text, runs the extractive summarizer when enough
// text is available, and falls back to the provider description or a static
// placeholder otherwise. Every served summary is logged asynchronously.
type Service struct {
	Fetcher    ContentFetcher
	Summarizer Summarizer
	Cache      Cache
	LogRepo    repository.SummaryLogRepository
	cfg        Config
}

// NewService creates a summary Service with the provided dependencies.
//
// Parameters:
//   - fetcher: Retrieves full article text (can be nil to disable scraping)
//   - summarizer: Extractive summarization pipeline
//   - cache: Summary cache keyed by URL fingerprint (can be nil to disable)
//   - logRepo: Repository for request logs (can be nil to disable logging)
//   - cfg: Policy configuration; zero values fall back to defaults
//
// Returns:
//   - *Service: Configured summary service ready to use
func NewService(
	fetcher ContentFetcher,
	summarizer Summarizer,
	cache Cache,
	logRepo repository.SummaryLogRepository,
	cfg Config,
) *Service {
	if cfg.MinSourceWords <= 0 {
		cfg.MinSourceWords = DefaultMinSourceWords
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	return &Service{
		Fetcher:    fetcher,
		Summarizer: summarizer,
		Cache:      cache,
		LogRepo:    logRepo,
		cfg:        cfg,
	}
}

// Fingerprint returns the cache and log key for an article URL. The raw URL
// is never stored; only this digest is.
func Fingerprint(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Summarize produces a summary for the requested article.
//
// Policy, in order:
//  1. Cached result for the URL fingerprint, if present.
//  2. Scraped full text, falling back to provider-supplied content.
//  3. Extractive summarization, only when the text has enough words.
//  4. Provider description when extraction is not possible.
//  5. Static placeholder as the last resort.
//
// Returns ErrInvalidArticleURL if the URL fails validation. All other
// failure modes degrade to a fallback summary rather than an error.
func (s *Service) Summarize(ctx context.Context, req Request) (*entity.Summary, error) {
	if err := entity.ValidateURL(req.URL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArticleURL, err)
	}

	key := Fingerprint(req.URL)

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(key); ok {
			result := cached
			result.Source = entity.SummaryCache
			s.record(key, entity.SummaryCache, req.UserID)
			return &result, nil
		}
	}

	summary := s.build(ctx, req)

	if s.Cache != nil {
		s.Cache.Set(key, *summary)
	}
	s.record(key, summary.Source, req.UserID)
	return summary, nil
}

// Stats reports summary request counts over the given window, grouped by
// text source.
func (s *Service) Stats(ctx context.Context, window time.Duration) (total int64, bySource []repository.SummarySourceCount, err error) {
	since := time.Now().Add(-window)

	total, err = s.LogRepo.CountSince(ctx, since)
	if err != nil {
		return 0, nil, fmt.Errorf("count summary logs: %w", err)
	}

	bySource, err = s.LogRepo.CountBySource(ctx, since)
	if err != nil {
		return 0, nil, fmt.Errorf("count summary logs by source: %w", err)
	}
	return total, bySource, nil
}

// build runs the retrieval and fallback chain. It never fails; the worst
// case is the static placeholder.
func (s *Service) build(ctx context.Context, req Request) *entity.Summary {
	source := s.sourceText(ctx, req)

	if text.CountWords(source) >= s.cfg.MinSourceWords {
		out, err := s.Summarizer.Summarize(ctx, source)
		if err != nil {
			slog.Warn("summarization failed, falling back",
				slog.String("url_hash", Fingerprint(req.URL)),
				slog.String("error", err.Error()))
		} else if out != "" {
			return &entity.Summary{Text: out, Source: entity.SummaryGenerated}
		}
	}

	if req.Description != "" {
		return &entity.Summary{
			Text:       req.Description,
			Source:     entity.SummaryDescription,
			IsFallback: true,
		}
	}

	return &entity.Summary{
		Text:       s.cfg.Placeholder,
		Source:     entity.SummaryPlaceholder,
		IsFallback: true,
	}
}

// sourceText picks the best available article text: scraped full text when
// the fetcher returns enough of it, otherwise the provider-supplied content.
func (s *Service) sourceText(ctx context.Context, req Request) string {
	if s.Fetcher != nil {
		scraped, err := s.Fetcher.FetchContent(ctx, req.URL)
		if err != nil {
			slog.Debug("content fetch failed",
				slog.String("url_hash", Fingerprint(req.URL)),
				slog.String("error", err.Error()))
		} else if text.CountWords(scraped) >= s.cfg.MinSourceWords {
			return scraped
		}
	}
	return req.Content
}

// record writes the summary log in a background goroutine. The write uses a
// detached context so request cancellation does not lose the log, and a
// failed write never affects the served response.
func (s *Service) record(urlHash string, source entity.SummarySource, userID string) {
	if s.LogRepo == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("summary log write panicked",
					slog.Any("panic", r),
					slog.String("stack", string(debug.Stack())))
				summaryLogWriteTotal.WithLabelValues("panic").Inc()
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
		defer cancel()

		err := s.LogRepo.Insert(ctx, &entity.SummaryLog{
			URLHash:   urlHash,
			Source:    source,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			slog.Warn("summary log write failed",
				slog.String("url_hash", urlHash),
				slog.String("error", err.Error()))
			summaryLogWriteTotal.WithLabelValues("error").Inc()
			return
		}
		summaryLogWriteTotal.WithLabelValues("ok").Inc()
	}()

	summaryServedTotal.WithLabelValues(string(source)).Inc()
}
