package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/linkrank/internal/entity"
)

// FetchFailureRepoImpl provides a concrete implementation for the FetchFailureRepository interface using PostgreSQL.
type FetchFailureRepoImpl struct {
	db *pgxpool.Pool
}

// NewFetchFailureRepo creates a new instance of FetchFailureRepoImpl.
func NewFetchFailureRepo(db *pgxpool.Pool) *FetchFailureRepoImpl {
	return &FetchFailureRepoImpl{db: db}
}

// Record appends a failed fetch to the audit trail.
func (r *FetchFailureRepoImpl) Record(ctx context.Context, failure *entity.FetchFailure) error {
	query := `
		INSERT INTO fetch_failures (cycle_id, url, stage, failure_reason, attempted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	return r.db.QueryRow(ctx, query,
		failure.CycleID.String(),
		failure.URL,
		failure.Stage,
		failure.FailureReason,
		failure.AttemptedAt,
	).Scan(&failure.ID)
}
