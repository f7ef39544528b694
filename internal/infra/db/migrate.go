package db

import (
	"database/sql"
)

// MigrateUp creates the summary_logs table and its supporting indexes.
// It is idempotent and safe to run on every startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS summary_logs (
    id         SERIAL PRIMARY KEY,
    url_hash   VARCHAR(64) NOT NULL,
    source     VARCHAR(20) NOT NULL,
    user_id    TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Stats endpoint groups by source over a time window
		`CREATE INDEX IF NOT EXISTS idx_summary_logs_created_at ON summary_logs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_summary_logs_source ON summary_logs(source)`,
		// Repeat-request analysis per article
		`CREATE INDEX IF NOT EXISTS idx_summary_logs_url_hash ON summary_logs(url_hash)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	return nil
}
