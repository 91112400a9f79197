package html_fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
)

const (
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/107.0.0.0 Safari/537.36"
	maxBodySize      = 10 * 1024 * 1024 // 10MB
)

// HTTPFetcher retrieves pages with a plain HTTP GET and parses them with goquery.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher whose requests time out after timeout.
// A zero timeout means requests never time out.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: defaultUserAgent,
	}
}

// Fetch downloads url and extracts its document. Any status outside 2xx is a failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*entity.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: received status code %d", repository.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", repository.ErrFetchFailed, err)
	}

	doc, err := Extract(url, string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse: %w", repository.ErrFetchFailed, err)
	}
	return doc, nil
}
