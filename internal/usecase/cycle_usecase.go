package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/pkg/metrics"
)

// Cycle holds everything derived from one crawl. A new Cycle is built for
// every run and nothing in it is shared with other cycles.
type Cycle struct {
	ID         uuid.UUID
	Seed       string
	StartedAt  time.Time
	Graph      *entity.CrawlGraph
	Resources  []entity.PageResource
	Statistics []entity.PageStatistics
}

// CycleRunner runs crawl, resource load and aggregation for a seed.
type CycleRunner struct {
	crawler *GraphCrawler
	loader  *ResourceLoader
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCycleRunner creates a new runner.
func NewCycleRunner(crawler *GraphCrawler, loader *ResourceLoader, m *metrics.Metrics, logger *zap.Logger) *CycleRunner {
	return &CycleRunner{crawler: crawler, loader: loader, metrics: m, logger: logger}
}

// Run builds a fresh Cycle for seed.
func (r *CycleRunner) Run(ctx context.Context, seed string) (*Cycle, error) {
	cycle := &Cycle{ID: uuid.New(), Seed: seed, StartedAt: time.Now()}
	ctx = WithCycleID(ctx, cycle.ID)
	log := r.logger.With(zap.String("cycle_id", cycle.ID.String()), zap.String("seed", seed))

	graph, err := r.crawler.Crawl(ctx, seed)
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", seed, err)
	}
	cycle.Graph = graph

	resources, err := r.loader.Load(ctx, graph.DiscoveredURLs)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	cycle.Resources = resources
	cycle.Statistics = Aggregate(resources, graph.Relationships)

	r.metrics.IncCycles()
	log.Info("crawl cycle completed",
		zap.Int("discovered", len(graph.DiscoveredURLs)),
		zap.Int("relationships", len(graph.Relationships)),
		zap.Int("resources", len(resources)),
		zap.Duration("duration", time.Since(cycle.StartedAt)),
	)
	return cycle, nil
}
