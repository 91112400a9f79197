package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/linkrank/internal/delivery/http/request"
	"github.com/user/linkrank/internal/delivery/http/response"
	"github.com/user/linkrank/internal/keyword"
	"github.com/user/linkrank/internal/repository"
	"github.com/user/linkrank/internal/usecase"
)

// CycleRunner runs a fresh crawl cycle.
type CycleRunner interface {
	Run(ctx context.Context, seed string) (*usecase.Cycle, error)
}

// Searcher ranks a cycle against a keyword.
type Searcher interface {
	Search(ctx context.Context, cycle *usecase.Cycle, kw string) (*usecase.SearchResult, error)
}

// HealthCheck pings one backend.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	runner      CycleRunner
	searcher    Searcher
	reports     repository.RankReportRepository
	defaultSeed string
	checks      map[string]HealthCheck
	logger      *zap.Logger
}

// NewHandler creates the API handler. reports may be nil when report
// persistence is disabled.
func NewHandler(runner CycleRunner, searcher Searcher, reports repository.RankReportRepository, defaultSeed string, checks map[string]HealthCheck, logger *zap.Logger) *Handler {
	return &Handler{
		runner:      runner,
		searcher:    searcher,
		reports:     reports,
		defaultSeed: defaultSeed,
		checks:      checks,
		logger:      logger,
	}
}

func (h *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	var req request.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	seed := req.Seed
	if seed == "" {
		seed = h.defaultSeed
	}
	if _, err := url.ParseRequestURI(seed); err != nil {
		h.writeJSONError(w, "Invalid seed URL format", http.StatusBadRequest)
		return
	}

	cycle, err := h.runner.Run(r.Context(), seed)
	if err != nil {
		h.logger.Error("failed to run crawl cycle", zap.String("seed", seed), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	res, err := h.searcher.Search(r.Context(), cycle, keyword.Normalize(req.Keyword))
	if err != nil {
		h.logger.Error("failed to rank crawl cycle", zap.String("seed", seed), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.RankResponse{
		Report:                res.Report,
		SkippedRecords:        res.SkippedRecords,
		MissingKeywordRecords: res.MissingKeywordRecords,
	})
}

func (h *Handler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if h.reports == nil {
		h.writeJSONError(w, "Report persistence is disabled", http.StatusNotImplemented)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSONError(w, "Invalid report id", http.StatusBadRequest)
		return
	}

	report, err := h.reports.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			h.writeJSONError(w, "Report not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get rank report", zap.String("report_id", id.String()), zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := response.HealthResponse{Status: "ok"}
	if len(h.checks) > 0 {
		resp.Backends = make(map[string]string, len(h.checks))
	}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Error("health check failed", zap.String("backend", name), zap.Error(err))
			resp.Backends[name] = "unhealthy"
			resp.Status = "unhealthy"
			continue
		}
		resp.Backends[name] = "healthy"
	}

	if resp.Status != "ok" {
		h.writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
