package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/delivery/http/handler"
	"github.com/user/linkrank/internal/delivery/http/response"
	"github.com/user/linkrank/internal/entity"
	"github.com/user/linkrank/internal/repository"
	"github.com/user/linkrank/internal/usecase"
	"github.com/user/linkrank/pkg/metrics"
)

const defaultSeed = "https://seed.test/"

type fakeRunner struct {
	seeds []string
	err   error
}

func (r *fakeRunner) Run(_ context.Context, seed string) (*usecase.Cycle, error) {
	r.seeds = append(r.seeds, seed)
	if r.err != nil {
		return nil, r.err
	}
	return &usecase.Cycle{ID: uuid.New(), Seed: seed, Graph: &entity.CrawlGraph{}}, nil
}

type fakeSearcher struct {
	keywords []string
}

func (s *fakeSearcher) Search(_ context.Context, cycle *usecase.Cycle, kw string) (*usecase.SearchResult, error) {
	s.keywords = append(s.keywords, kw)
	return &usecase.SearchResult{
		Report: &entity.RankReport{
			ID:       uuid.New(),
			CycleID:  cycle.ID,
			Seed:     cycle.Seed,
			Keyword:  kw,
			Entries:  []entity.RankEntry{{Term: "Home", Calls: 1, Score: 10}},
			Keywords: []entity.KeywordRecord{},
		},
		MissingKeywordRecords: 1,
	}, nil
}

type fakeReports struct {
	report *entity.RankReport
	err    error
}

func (f *fakeReports) Save(context.Context, *entity.RankReport) error { return nil }

func (f *fakeReports) FindByID(_ context.Context, id uuid.UUID) (*entity.RankReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.report == nil || f.report.ID != id {
		return nil, repository.ErrReportNotFound
	}
	return f.report, nil
}

type testServer struct {
	runner   *fakeRunner
	searcher *fakeSearcher
	registry *prometheus.Registry
	handler  http.Handler
}

func newTestServer(reports repository.RankReportRepository, checks map[string]handler.HealthCheck) *testServer {
	ts := &testServer{
		runner:   &fakeRunner{},
		searcher: &fakeSearcher{},
		registry: prometheus.NewRegistry(),
	}
	h := handler.NewHandler(ts.runner, ts.searcher, reports, defaultSeed, checks, zap.NewNop())
	ts.handler = New(h, metrics.New(ts.registry), ts.registry, zap.NewNop())
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func TestHealth(t *testing.T) {
	ts := newTestServer(nil, nil)

	rec := ts.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHealth_Unhealthy(t *testing.T) {
	ts := newTestServer(nil, map[string]handler.HealthCheck{
		"redis":    func(context.Context) error { return nil },
		"postgres": func(context.Context) error { return errors.New("connection refused") },
	})

	rec := ts.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp response.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, map[string]string{"redis": "healthy", "postgres": "unhealthy"}, resp.Backends)
}

func TestRank(t *testing.T) {
	ts := newTestServer(nil, nil)

	rec := ts.do(http.MethodPost, "/api/rank", `{"seed":"https://other.test/","keyword":" ficcao cientifica "}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp response.RankResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://other.test/", resp.Report.Seed)
	assert.Equal(t, "ficção científica", resp.Report.Keyword)
	assert.Equal(t, 1, resp.MissingKeywordRecords)
	require.Len(t, resp.Report.Entries, 1)
	assert.Equal(t, "Home", resp.Report.Entries[0].Term)
}

func TestRank_DefaultSeed(t *testing.T) {
	ts := newTestServer(nil, nil)

	rec := ts.do(http.MethodPost, "/api/rank", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{defaultSeed}, ts.runner.seeds)
	assert.Equal(t, []string{""}, ts.searcher.keywords)
}

func TestRank_BadRequest(t *testing.T) {
	ts := newTestServer(nil, nil)

	rec := ts.do(http.MethodPost, "/api/rank", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/rank", `{"seed":"not a url"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.runner.seeds)
}

func TestRank_CycleError(t *testing.T) {
	ts := newTestServer(nil, nil)
	ts.runner.err = errors.New("boom")

	rec := ts.do(http.MethodPost, "/api/rank", `{"keyword":"matrix"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, ts.searcher.keywords)
}

func TestGetReport(t *testing.T) {
	report := &entity.RankReport{ID: uuid.New(), Seed: defaultSeed, Keyword: "matrix"}
	ts := newTestServer(&fakeReports{report: report}, nil)

	rec := ts.do(http.MethodGet, "/api/reports/"+report.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.RankReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, report.ID, got.ID)

	rec = ts.do(http.MethodGet, "/api/reports/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/reports/nope", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReport_StorageError(t *testing.T) {
	ts := newTestServer(&fakeReports{err: errors.New("db down")}, nil)

	rec := ts.do(http.MethodGet, "/api/reports/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetReport_PersistenceDisabled(t *testing.T) {
	ts := newTestServer(nil, nil)

	rec := ts.do(http.MethodGet, "/api/reports/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(nil, nil)
	ts.do(http.MethodGet, "/api/reports/"+uuid.NewString(), "")

	rec := ts.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/reports/{id}",status="501"} 1`)
}
