package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
	"github.com/user/linkrank/pkg/metrics"
	"github.com/user/linkrank/pkg/utils"
)

var ErrEmptySeed = errors.New("seed URL is empty")

// GraphCrawler discovers every page reachable from a seed, breadth first.
// Pages are fetched one at a time. There is no depth or page limit, so the
// crawl only ends when the queue is exhausted or ctx is cancelled.
type GraphCrawler struct {
	pages  *pageFetcher
	logger *zap.Logger
}

// NewGraphCrawler creates a new crawler. failures and m may be nil.
func NewGraphCrawler(fetcher repository.Fetcher, failures repository.FetchFailureRepository, m *metrics.Metrics, logger *zap.Logger) *GraphCrawler {
	return &GraphCrawler{
		pages:  &pageFetcher{fetcher: fetcher, failures: failures, metrics: m, logger: logger},
		logger: logger,
	}
}

// Crawl builds the link graph reachable from seed. Every anchor of every
// fetched page becomes a relationship, including anchors with an empty href.
// Pages that fail to fetch are skipped and contribute no relationship.
func (c *GraphCrawler) Crawl(ctx context.Context, seed string) (*entity.CrawlGraph, error) {
	if seed == "" {
		return nil, ErrEmptySeed
	}

	graph := &entity.CrawlGraph{DiscoveredURLs: []string{seed}}
	queue := []string{seed}
	visited := make(map[string]struct{})
	discovered := map[string]struct{}{seed: {}}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := queue[0]
		queue = queue[1:]
		c.pages.metrics.SetQueueSize(len(queue))

		if _, seen := visited[current]; seen {
			continue
		}
		visited[current] = struct{}{}

		doc, err := c.pages.fetch(ctx, stageCrawl, current)
		if err != nil {
			continue
		}

		for _, href := range doc.Hrefs {
			graph.Relationships = append(graph.Relationships, entity.NewLinkRelationship(current, doc.Title, href))

			if href == "" {
				continue
			}
			link, err := utils.ResolveHref(current, href)
			if err != nil {
				c.logger.Debug("skipping unresolvable href", zap.String("page", current), zap.String("href", href), zap.Error(err))
				continue
			}
			if _, seen := discovered[link]; link == "" || seen {
				continue
			}
			discovered[link] = struct{}{}
			graph.DiscoveredURLs = append(graph.DiscoveredURLs, link)
			queue = append(queue, link)
		}
		c.pages.metrics.SetQueueSize(len(queue))
	}

	c.pages.metrics.AddRelationships(len(graph.Relationships))
	return graph, nil
}
