package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
)

// newTestPool connects to POSTGRES_URL and applies the schema, skipping the
// test when no database is configured.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	connString := os.Getenv("POSTGRES_URL")
	if connString == "" {
		t.Skip("POSTGRES_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connString)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, EnsureSchema(ctx, pool))
	t.Cleanup(pool.Close)
	return pool
}

func TestRankReportRepo_SaveAndFind(t *testing.T) {
	pool := newTestPool(t)
	repo := NewRankReportRepo(pool)
	ctx := context.Background()

	report := &entity.RankReport{
		ID:      uuid.New(),
		CycleID: uuid.New(),
		Seed:    "https://example.com/",
		Keyword: "matrix",
		Entries: []entity.RankEntry{
			{Term: "Home", Calls: 3, Score: 40, ReferencedFrom: []string{"A", "B", "C"}, QueryOccurrences: 2, SelfReferenceFlags: []bool{}},
			{Term: "Dup", Calls: 1, Score: -5, ReferencedFrom: []string{"A", "A"}, SelfReferenceFlags: []bool{true}},
		},
		Keywords: []entity.KeywordRecord{
			{PageTitle: "Home", OccurrenceCount: 2, WeightedScore: 10},
			{PageTitle: "Dup", OccurrenceCount: 0, WeightedScore: 0},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, repo.Save(ctx, report))

	got, err := repo.FindByID(ctx, report.ID)
	require.NoError(t, err)

	assert.Equal(t, report.CycleID, got.CycleID)
	assert.Equal(t, report.Seed, got.Seed)
	assert.Equal(t, report.Keyword, got.Keyword)
	assert.Equal(t, report.Entries, got.Entries)
	assert.Equal(t, report.Keywords, got.Keywords)
	assert.True(t, report.CreatedAt.Equal(got.CreatedAt))
}

func TestRankReportRepo_NotFound(t *testing.T) {
	repo := NewRankReportRepo(newTestPool(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrReportNotFound)
}

func TestFetchFailureRepo_Record(t *testing.T) {
	repo := NewFetchFailureRepo(newTestPool(t))

	failure := &entity.FetchFailure{
		CycleID:       uuid.New(),
		URL:           "https://example.com/missing",
		Stage:         "crawl",
		FailureReason: "fetch failed: received status code 404",
		AttemptedAt:   time.Now(),
	}
	require.NoError(t, repo.Record(context.Background(), failure))
	assert.NotZero(t, failure.ID)
}
