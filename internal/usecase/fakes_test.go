package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/user/linkrank/internal/adapter/html_fetcher"
	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
)

const siteRoot = "https://site.test/"

// mockSite returns a small fully linked site:
//
//	/            -> itself (literal), about.html, /blog/, "" and a missing page
//	/about.html  -> / (literal), blog/, about.html (relative self)
//	/blog/       -> ../about.html, /about.html (literal)
func mockSite() map[string]string {
	return map[string]string{
		siteRoot: `<html><head><title>Home</title></head><body>
			<p>matrix</p>
			<a href="https://site.test/">self</a>
			<a href="about.html">about</a>
			<a href="/blog/">blog</a>
			<a href="">empty</a>
			<a href="https://site.test/missing.html">missing</a>
		</body></html>`,
		siteRoot + "about.html": `<html><head><title>About</title></head><body>
			<p>matrix and matrix</p>
			<a href="https://site.test/">home</a>
			<a href="blog/">blog</a>
			<a href="about.html">me</a>
		</body></html>`,
		siteRoot + "blog/": `<html><head><title>Blog</title></head><body>
			<a href="../about.html">about</a>
			<a href="https://site.test/about.html">about again</a>
		</body></html>`,
	}
}

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{pages: pages, calls: make(map[string]int)}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*entity.Document, error) {
	f.mu.Lock()
	f.calls[url]++
	markup, ok := f.pages[url]
	f.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: received status code 404", repository.ErrFetchFailed)
	}
	return html_fetcher.Extract(url, markup)
}

func (f *fakeFetcher) callsFor(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

type memoryBodyStore struct {
	content strings.Builder
	appends int
}

func (s *memoryBodyStore) IsEmpty(context.Context) (bool, error) {
	return s.content.Len() == 0, nil
}

func (s *memoryBodyStore) Append(_ context.Context, content string) error {
	s.appends++
	s.content.WriteString(content)
	return nil
}

func (s *memoryBodyStore) ReadAll(context.Context) (string, error) {
	return s.content.String(), nil
}

func (s *memoryBodyStore) Truncate(context.Context) error {
	s.content.Reset()
	return nil
}

type memoryFailures struct {
	mu       sync.Mutex
	failures []*entity.FetchFailure
}

func (m *memoryFailures) Record(_ context.Context, failure *entity.FetchFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, failure)
	return nil
}

type memoryReports struct {
	reports map[uuid.UUID]*entity.RankReport
}

func (m *memoryReports) Save(_ context.Context, report *entity.RankReport) error {
	if m.reports == nil {
		m.reports = make(map[uuid.UUID]*entity.RankReport)
	}
	m.reports[report.ID] = report
	return nil
}

func (m *memoryReports) FindByID(_ context.Context, id uuid.UUID) (*entity.RankReport, error) {
	if r, ok := m.reports[id]; ok {
		return r, nil
	}
	return nil, repository.ErrReportNotFound
}
