package chromedp_fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/adapter/html_fetcher"
	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
)

// ChromedpFetcher renders pages in headless Chrome before extracting them,
// so links added by scripts are visible to the crawler. One browser is
// started on the first fetch and every fetch runs in its own tab.
type ChromedpFetcher struct {
	mu         sync.Mutex
	browserCtx context.Context
	cancels    []context.CancelFunc
	timeout    time.Duration
	logger     *zap.Logger
}

// NewChromedpFetcher creates a new fetcher using chromedp.
func NewChromedpFetcher(pageLoadTimeout time.Duration, logger *zap.Logger) *ChromedpFetcher {
	return &ChromedpFetcher{timeout: pageLoadTimeout, logger: logger}
}

// browser returns the shared browser context, launching Chrome if needed.
func (f *ChromedpFetcher) browser() (context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.browserCtx != nil {
		return f.browserCtx, nil
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(f.logger.Sugar().Debugf))

	// An empty Run allocates the browser; contexts derived from browserCtx open tabs in it
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	f.logger.Info("headless browser started")

	f.browserCtx = browserCtx
	f.cancels = append(f.cancels, cancelBrowser, cancelAlloc)
	return browserCtx, nil
}

// Fetch navigates to url in a new tab, waits for the body and extracts the rendered HTML.
func (f *ChromedpFetcher) Fetch(ctx context.Context, url string) (*entity.Document, error) {
	browserCtx, err := f.browser()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrFetchFailed, err)
	}

	taskCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	if f.timeout > 0 {
		taskCtx, cancel = context.WithTimeout(taskCtx, f.timeout)
		defer cancel()
	}

	// Close the tab when the caller gives up
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var htmlContent string
	err = chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrFetchFailed, err)
	}

	doc, err := html_fetcher.Extract(url, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %w", repository.ErrFetchFailed, err)
	}
	return doc, nil
}

// Close shuts down the browser. A later Fetch starts a new one.
func (f *ChromedpFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, cancel := range f.cancels {
		cancel()
	}
	f.cancels = nil
	f.browserCtx = nil
}
