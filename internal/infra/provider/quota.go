package provider

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrQuotaExceeded indicates the provider's daily request quota is spent.
// Callers should serve cached data until the quota resets at UTC midnight.
var ErrQuotaExceeded = errors.New("provider daily quota exceeded")

// warnFraction is the share of the quota after which a warning is logged.
const warnFraction = 0.8

var quotaUsedGauge = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "provider_quota_used",
		Help: "Provider API requests used in the current UTC day",
	},
)

// QuotaCounter tracks daily request usage against the provider's quota.
// The free provider tier allows a fixed number of requests per day, counted
// in UTC, so the counter rolls over at UTC midnight.
//
// Thread safety: QuotaCounter is safe for concurrent use.
type QuotaCounter struct {
	mu     sync.Mutex
	limit  int
	day    string // "2006-01-02" in UTC
	used   int
	warned bool

	now func() time.Time // injectable for tests
}

// NewQuotaCounter creates a quota counter for the given daily limit.
// A non-positive limit disables quota enforcement.
func NewQuotaCounter(limit int) *QuotaCounter {
	return &QuotaCounter{limit: limit, now: time.Now}
}

// Acquire consumes one request from today's quota. It returns
// ErrQuotaExceeded when the quota is spent. A warning is logged once per
// day when usage passes the warn threshold.
func (q *QuotaCounter) Acquire() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.rollover()

	if q.limit > 0 && q.used >= q.limit {
		return ErrQuotaExceeded
	}

	q.used++
	quotaUsedGauge.Set(float64(q.used))

	if q.limit > 0 && !q.warned && float64(q.used) >= warnFraction*float64(q.limit) {
		q.warned = true
		slog.Warn("provider quota nearing limit",
			slog.Int("used", q.used),
			slog.Int("limit", q.limit))
	}

	return nil
}

// Used returns the number of requests consumed today.
func (q *QuotaCounter) Used() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()
	return q.used
}

// Remaining returns how many requests are left today. It returns -1 when
// quota enforcement is disabled.
func (q *QuotaCounter) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()
	if q.limit <= 0 {
		return -1
	}
	return q.limit - q.used
}

// rollover resets the counter when the UTC day has changed.
// Callers must hold q.mu.
func (q *QuotaCounter) rollover() {
	today := q.now().UTC().Format("2006-01-02")
	if q.day != today {
		q.day = today
		q.used = 0
		q.warned = false
		quotaUsedGauge.Set(0)
	}
}
