package response

import "github.com/user/linkrank/internal/entity"

// RankResponse is the DTO returned for a ranked crawl cycle.
type RankResponse struct {
	Report                *entity.RankReport `json:"report"`
	SkippedRecords        int                `json:"skipped_records"`
	MissingKeywordRecords int                `json:"missing_keyword_records"`
}

// HealthResponse reports the state of each configured backend.
type HealthResponse struct {
	Status   string            `json:"status"` // "ok" or "unhealthy"
	Backends map[string]string `json:"backends,omitempty"`
}
