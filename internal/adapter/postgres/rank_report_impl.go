package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
)

// RankReportRepoImpl provides a concrete implementation for the RankReportRepository interface using PostgreSQL.
type RankReportRepoImpl struct {
	db *pgxpool.Pool
}

// NewRankReportRepo creates a new instance of RankReportRepoImpl.
func NewRankReportRepo(db *pgxpool.Pool) *RankReportRepoImpl {
	return &RankReportRepoImpl{db: db}
}

// Save stores a report, its rank entries and keyword records within a single transaction.
func (r *RankReportRepoImpl) Save(ctx context.Context, report *entity.RankReport) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO rank_reports (id, cycle_id, seed, keyword, created_at) VALUES ($1, $2, $3, $4, $5)`,
		report.ID.String(), report.CycleID.String(), report.Seed, report.Keyword, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rank report: %w", err)
	}

	batch := &pgx.Batch{}
	for i, e := range report.Entries {
		batch.Queue(`INSERT INTO rank_entries
			(report_id, position, term, calls, score, referenced_from, query_occurrences, self_reference_flags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			report.ID.String(), i, e.Term, e.Calls, e.Score, nonNil(e.ReferencedFrom), e.QueryOccurrences, nonNil(e.SelfReferenceFlags))
	}
	for i, k := range report.Keywords {
		batch.Queue(`INSERT INTO keyword_records (report_id, position, page_title, occurrence_count, weighted_score)
			VALUES ($1, $2, $3, $4, $5)`,
			report.ID.String(), i, k.PageTitle, k.OccurrenceCount, k.WeightedScore)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert rank rows: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// FindByID retrieves a report and its rows, in their saved order.
func (r *RankReportRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.RankReport, error) {
	var (
		report  entity.RankReport
		cycleID string
	)
	err := r.db.QueryRow(ctx,
		`SELECT cycle_id, seed, keyword, created_at FROM rank_reports WHERE id = $1`, id.String(),
	).Scan(&cycleID, &report.Seed, &report.Keyword, &report.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	report.ID = id
	if report.CycleID, err = uuid.Parse(cycleID); err != nil {
		return nil, fmt.Errorf("parse cycle id: %w", err)
	}

	if report.Entries, err = r.findEntries(ctx, id); err != nil {
		return nil, err
	}
	if report.Keywords, err = r.findKeywords(ctx, id); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *RankReportRepoImpl) findEntries(ctx context.Context, id uuid.UUID) ([]entity.RankEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT term, calls, score, referenced_from, query_occurrences, self_reference_flags
		 FROM rank_entries WHERE report_id = $1 ORDER BY position ASC`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []entity.RankEntry{}
	for rows.Next() {
		var e entity.RankEntry
		if err := rows.Scan(&e.Term, &e.Calls, &e.Score, &e.ReferencedFrom, &e.QueryOccurrences, &e.SelfReferenceFlags); err != nil {
			return nil, err
		}
		e.ReferencedFrom = nonNil(e.ReferencedFrom)
		e.SelfReferenceFlags = nonNil(e.SelfReferenceFlags)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *RankReportRepoImpl) findKeywords(ctx context.Context, id uuid.UUID) ([]entity.KeywordRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT page_title, occurrence_count, weighted_score
		 FROM keyword_records WHERE report_id = $1 ORDER BY position ASC`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []entity.KeywordRecord{}
	for rows.Next() {
		var k entity.KeywordRecord
		if err := rows.Scan(&k.PageTitle, &k.OccurrenceCount, &k.WeightedScore); err != nil {
			return nil, err
		}
		records = append(records, k)
	}
	return records, rows.Err()
}

// nonNil keeps NOT NULL array columns from receiving a NULL and makes empty
// arrays read back as empty slices.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
