package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsbrief/internal/domain/entity"
	"newsbrief/internal/repository"
	"newsbrief/internal/resilience/circuitbreaker"
	"newsbrief/internal/resilience/retry"
)

// SummaryLogRepo persists summary request logs. Database calls go through a
// circuit breaker so a failing database sheds load fast instead of stalling
// every request on connection timeouts. Writes additionally retry transient
// connection failures, since a dropped log row loses usage data for good.
type SummaryLogRepo struct{ db *circuitbreaker.DBCircuitBreaker }

func NewSummaryLogRepo(db *sql.DB) repository.SummaryLogRepository {
	return &SummaryLogRepo{db: circuitbreaker.NewDBCircuitBreaker(db)}
}

func (repo *SummaryLogRepo) Insert(ctx context.Context, log *entity.SummaryLog) error {
	const query = `
INSERT INTO summary_logs (url_hash, source, user_id, created_at)
VALUES ($1, $2, $3, $4)`

	// Empty user IDs are stored as NULL so aggregate queries can tell
	// anonymous traffic apart from authenticated traffic.
	var userID sql.NullString
	if log.UserID != "" {
		userID = sql.NullString{String: log.UserID, Valid: true}
	}

	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		_, err := repo.db.ExecContext(ctx, query,
			log.URLHash, string(log.Source), userID, createdAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

func (repo *SummaryLogRepo) CountBySource(ctx context.Context, since time.Time) ([]repository.SummarySourceCount, error) {
	const query = `
SELECT source, COUNT(*) AS cnt
FROM summary_logs
WHERE created_at >= $1
GROUP BY source
ORDER BY cnt DESC`
	rows, err := repo.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("CountBySource: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]repository.SummarySourceCount, 0, 4)
	for rows.Next() {
		var c repository.SummarySourceCount
		if err := rows.Scan(&c.Source, &c.Count); err != nil {
			return nil, fmt.Errorf("CountBySource: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (repo *SummaryLogRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM summary_logs WHERE created_at >= $1`
	var total int64
	err := repo.db.QueryRowContext(ctx, query, since).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("CountSince: %w", err)
	}
	return total, nil
}
