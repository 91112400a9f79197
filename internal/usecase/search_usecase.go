package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/keyword"
	"github.com/user/linkrank/internal/ranking"
	"github.com/user/linkrank/internal/repository"
	"github.com/user/linkrank/pkg/metrics"
)

// SearchResult is a ranked cycle for one keyword.
type SearchResult struct {
	Report *entity.RankReport
	// SkippedRecords counts body store records that did not match the format.
	SkippedRecords int
	// MissingKeywordRecords counts ranked terms that had no keyword record.
	MissingKeywordRecords int
}

// Searcher ranks a crawl cycle against a keyword using the body store.
// Searches are serialised since they share one store, which holds the pages
// of a single seed at a time.
type Searcher struct {
	mu sync.Mutex

	store   repository.BodyStore
	format  keyword.Format
	policy  ranking.Policy
	reports repository.RankReportRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewSearcher creates a new Searcher. reports and m may be nil.
func NewSearcher(store repository.BodyStore, format keyword.Format, policy ranking.Policy, reports repository.RankReportRepository, m *metrics.Metrics, logger *zap.Logger) *Searcher {
	return &Searcher{
		store:   store,
		format:  format,
		policy:  policy,
		reports: reports,
		metrics: m,
		logger:  logger,
	}
}

// Policy returns the scoring policy in use.
func (s *Searcher) Policy() ranking.Policy {
	return s.policy
}

// Search populates the body store when it is absent or empty, counts kw in
// the stored bodies and ranks the cycle. An empty kw skips the keyword scan
// and every term gets zero query points. A store built from another seed is
// rebuilt, even when it was left behind by an earlier run.
func (s *Searcher) Search(ctx context.Context, cycle *Cycle, kw string) (*SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.populate(ctx, cycle); err != nil {
		return nil, err
	}

	var scan keyword.Result
	if kw != "" {
		content, err := s.store.ReadAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("read body store: %w", err)
		}
		scan = keyword.Read(content, s.format, kw, s.policy.QueryWeight)
		if scan.Skipped > 0 {
			s.logger.Debug("skipped malformed body records", zap.Int("count", scan.Skipped))
			s.metrics.AddSkippedRecords(scan.Skipped)
		}
	}

	entries, missing := s.policy.Rank(cycle.Statistics, cycle.Graph.Relationships, scan.Records)
	s.metrics.AddMissingKeywordRecords(missing)

	keywords := scan.Records
	if keywords == nil {
		keywords = []entity.KeywordRecord{}
	}
	report := &entity.RankReport{
		ID:        uuid.New(),
		CycleID:   cycle.ID,
		Seed:      cycle.Seed,
		Keyword:   kw,
		Entries:   entries,
		Keywords:  keywords,
		CreatedAt: time.Now(),
	}

	if s.reports != nil {
		if err := s.reports.Save(ctx, report); err != nil {
			s.logger.Warn("failed to save rank report", zap.String("report_id", report.ID.String()), zap.Error(err))
		}
	}

	return &SearchResult{Report: report, SkippedRecords: scan.Skipped, MissingKeywordRecords: missing}, nil
}

// ResetStore empties the body store, used when the seed changes.
func (s *Searcher) ResetStore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Truncate(ctx); err != nil {
		return fmt.Errorf("truncate body store: %w", err)
	}
	return nil
}

// populate writes the cycle's pages when the store is absent or empty, or
// when its header names another seed. A store without a header is treated
// as foreign and rebuilt.
func (s *Searcher) populate(ctx context.Context, cycle *Cycle) error {
	empty, err := s.store.IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("inspect body store: %w", err)
	}
	if !empty {
		content, err := s.store.ReadAll(ctx)
		if err != nil {
			return fmt.Errorf("read body store: %w", err)
		}
		stored := keyword.StoredSeed(content)
		if stored == cycle.Seed {
			return nil
		}
		s.logger.Info("rebuilding body store for a new seed", zap.String("stored_seed", stored), zap.String("seed", cycle.Seed))
		if err := s.store.Truncate(ctx); err != nil {
			return fmt.Errorf("truncate body store: %w", err)
		}
	}

	pages := make([]keyword.StoredPage, 0, len(cycle.Resources))
	for _, r := range cycle.Resources {
		pages = append(pages, keyword.NewStoredPage(r))
	}
	content := keyword.SeedHeader(cycle.Seed) + keyword.Encode(s.format, pages)
	if err := s.store.Append(ctx, content); err != nil {
		return fmt.Errorf("write body store: %w", err)
	}
	s.logger.Info("body store populated", zap.Int("records", len(pages)))
	return nil
}
