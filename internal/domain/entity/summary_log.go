package entity

import "time"

// SummaryLog records one summarization request for usage analysis. The
// article URL is stored only as a fingerprint; the raw URL never reaches
// persistence.
type SummaryLog struct {
	ID        int64
	URLHash   string
	Source    SummarySource
	UserID    string // empty for anonymous requests
	CreatedAt time.Time
}
