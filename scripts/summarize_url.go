// Command summarize_url is an operational diagnostic. It scrapes one article
// URL and runs the extractive pipeline against it, printing a JSON report.
// Useful for checking why a given site produces placeholder summaries before
// blaming the service.
//
// Usage:
//
//	go run scripts/summarize_url.go -url https://example.com/article
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"newsbrief/internal/infra/fetcher"
	"newsbrief/internal/infra/summarizer"
)

// Report is the diagnostic result for a single URL.
type Report struct {
	URL          string `json:"url"`
	Status       string `json:"status"` // "OK", "FETCH_ERROR", "SUMMARIZE_ERROR"
	SourceWords  int    `json:"source_words"`
	SummaryWords int    `json:"summary_words"`
	Summary      string `json:"summary,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	FetchTimeMS  int64  `json:"fetch_time_ms"`
}

func main() {
	urlFlag := flag.String("url", "", "article URL to diagnose")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	if *urlFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: summarize_url -url <article-url>")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report := diagnose(ctx, *urlFlag)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatal(err)
	}
	if report.Status != "OK" {
		os.Exit(1)
	}
}

func diagnose(ctx context.Context, url string) Report {
	report := Report{URL: url}

	f := fetcher.NewReadabilityFetcher(fetcher.DefaultConfig())

	start := time.Now()
	text, err := f.FetchContent(ctx, url)
	report.FetchTimeMS = time.Since(start).Milliseconds()
	if err != nil {
		report.Status = "FETCH_ERROR"
		report.ErrorMessage = err.Error()
		return report
	}
	report.SourceWords = len(strings.Fields(text))

	ext, err := summarizer.NewExtractive(summarizer.LoadOptionsFromEnv())
	if err != nil {
		report.Status = "SUMMARIZE_ERROR"
		report.ErrorMessage = err.Error()
		return report
	}

	summary, err := ext.Summarize(ctx, text)
	if err != nil {
		report.Status = "SUMMARIZE_ERROR"
		report.ErrorMessage = err.Error()
		return report
	}

	report.Status = "OK"
	report.Summary = summary
	report.SummaryWords = len(strings.Fields(summary))
	return report
}
