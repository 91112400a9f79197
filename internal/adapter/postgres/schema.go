package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS rank_reports (
		id         TEXT PRIMARY KEY,
		cycle_id   TEXT NOT NULL,
		seed       TEXT NOT NULL,
		keyword    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rank_entries (
		report_id            TEXT NOT NULL REFERENCES rank_reports(id) ON DELETE CASCADE,
		position             INTEGER NOT NULL,
		term                 TEXT NOT NULL,
		calls                INTEGER NOT NULL,
		score                INTEGER NOT NULL,
		referenced_from      TEXT[] NOT NULL,
		query_occurrences    INTEGER NOT NULL,
		self_reference_flags BOOLEAN[] NOT NULL,
		PRIMARY KEY (report_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS keyword_records (
		report_id        TEXT NOT NULL REFERENCES rank_reports(id) ON DELETE CASCADE,
		position         INTEGER NOT NULL,
		page_title       TEXT NOT NULL,
		occurrence_count INTEGER NOT NULL,
		weighted_score   INTEGER NOT NULL,
		PRIMARY KEY (report_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS fetch_failures (
		id             BIGSERIAL PRIMARY KEY,
		cycle_id       TEXT NOT NULL,
		url            TEXT NOT NULL,
		stage          TEXT NOT NULL,
		failure_reason TEXT NOT NULL,
		attempted_at   TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables used by the repositories when missing.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, q := range schema {
		if _, err := db.Exec(ctx, q); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
