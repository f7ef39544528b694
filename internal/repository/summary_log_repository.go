package repository

import (
	"context"
	"time"

	"newsbrief/internal/domain/entity"
)

// SummarySourceCount aggregates how many summaries were served from one
// source over a reporting window.
type SummarySourceCount struct {
	Source entity.SummarySource
	Count  int64
}

// SummaryLogRepository persists summarization request logs and answers
// aggregate usage queries. Writes are best-effort from the caller's point
// of view: a failed insert must never fail the summarization request.
type SummaryLogRepository interface {
	Insert(ctx context.Context, log *entity.SummaryLog) error

	// CountBySource returns per-source request counts since the given time,
	// ordered by count descending.
	CountBySource(ctx context.Context, since time.Time) ([]SummarySourceCount, error)

	// CountSince returns the total number of logged requests since the
	// given time.
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
