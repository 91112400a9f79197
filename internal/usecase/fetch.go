package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
	"github.com/user/linkrank/pkg/metrics"
)

const (
	stageCrawl = "crawl"
	stageLoad  = "load"
)

type cycleIDKey struct{}

// WithCycleID attaches the crawl cycle id to ctx so failures can be traced back to it.
func WithCycleID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, cycleIDKey{}, id)
}

// CycleIDFrom returns the cycle id stored in ctx, or uuid.Nil.
func CycleIDFrom(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(cycleIDKey{}).(uuid.UUID)
	return id
}

// pageFetcher wraps a Fetcher with logging, metrics and the failure log.
// A fetch failure is never fatal: it is logged, recorded and handed back.
type pageFetcher struct {
	fetcher  repository.Fetcher
	failures repository.FetchFailureRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func (f *pageFetcher) fetch(ctx context.Context, stage, url string) (*entity.Document, error) {
	start := time.Now()
	doc, err := f.fetcher.Fetch(ctx, url)
	f.metrics.ObserveFetch(stage, err == nil, time.Since(start).Seconds())

	if err != nil {
		f.logger.Warn("failed to fetch page", zap.String("stage", stage), zap.String("url", url), zap.Error(err))
		f.recordFailure(ctx, stage, url, err)
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return doc, nil
}

func (f *pageFetcher) recordFailure(ctx context.Context, stage, url string, fetchErr error) {
	if f.failures == nil || ctx.Err() != nil {
		return
	}
	failure := &entity.FetchFailure{
		CycleID:       CycleIDFrom(ctx),
		URL:           url,
		Stage:         stage,
		FailureReason: fetchErr.Error(),
		AttemptedAt:   time.Now(),
	}
	if err := f.failures.Record(ctx, failure); err != nil {
		// The failure log is an audit trail, losing an entry is not critical.
		f.logger.Warn("failed to record fetch failure", zap.String("url", url), zap.Error(err))
	}
}
