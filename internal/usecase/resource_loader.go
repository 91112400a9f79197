package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
	"github.com/user/linkrank/pkg/metrics"
)

type resourceKind int

const (
	resourceTitle resourceKind = iota
	resourceMarkup
)

// ResourceLoader retrieves the title and body of discovered pages.
type ResourceLoader struct {
	pages   *pageFetcher
	workers int
	logger  *zap.Logger
}

// NewResourceLoader creates a loader running at most workers loads at once.
func NewResourceLoader(fetcher repository.Fetcher, failures repository.FetchFailureRepository, workers int, m *metrics.Metrics, logger *zap.Logger) *ResourceLoader {
	if workers < 1 {
		workers = 1
	}
	return &ResourceLoader{
		pages:   &pageFetcher{fetcher: fetcher, failures: failures, metrics: m, logger: logger},
		workers: workers,
		logger:  logger,
	}
}

// Load fetches title and markup for every URL. URLs missing either value
// are dropped; the output keeps the input order.
func (l *ResourceLoader) Load(ctx context.Context, urls []string) ([]entity.PageResource, error) {
	slots := make([]*entity.PageResource, len(urls))

	var g errgroup.Group
	g.SetLimit(l.workers)
	for i, u := range urls {
		g.Go(func() error {
			res, err := l.load(ctx, u)
			if err != nil {
				l.logger.Debug("dropping page without resource", zap.String("url", u), zap.Error(err))
				return nil
			}
			slots[i] = res
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resources := make([]entity.PageResource, 0, len(urls))
	for _, res := range slots {
		if res != nil {
			resources = append(resources, *res)
		}
	}
	return resources, nil
}

// load issues two independent fetches, one for the title and one for the
// markup, so the two values may come from different versions of the page.
func (l *ResourceLoader) load(ctx context.Context, url string) (*entity.PageResource, error) {
	title, err := l.resource(ctx, url, resourceTitle)
	if err != nil {
		return nil, err
	}
	body, err := l.resource(ctx, url, resourceMarkup)
	if err != nil {
		return nil, err
	}
	return &entity.PageResource{Title: title, URL: url, Body: body}, nil
}

func (l *ResourceLoader) resource(ctx context.Context, url string, kind resourceKind) (string, error) {
	doc, err := l.pages.fetch(ctx, stageLoad, url)
	if err != nil {
		return "", err
	}

	var value string
	switch kind {
	case resourceTitle:
		value = doc.Title
	default:
		value = doc.Markup
	}
	if value == "" {
		return "", fmt.Errorf("%s: %w", url, repository.ErrNoResource)
	}
	return value, nil
}
