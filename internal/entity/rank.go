package entity

import (
	"time"

	"github.com/google/uuid"
)

// RankEntry is a single row of the ranking, keyed by page title.
type RankEntry struct {
	Term               string   `json:"term"`
	Calls              int      `json:"calls"`
	Score              int      `json:"score"`
	ReferencedFrom     []string `json:"referenced_from"`
	QueryOccurrences   int      `json:"query_occurrences"`
	SelfReferenceFlags []bool   `json:"self_reference_flags"`
}

// SelfReferences is the number of self-referencing relationships of the entry.
func (e RankEntry) SelfReferences() int {
	return len(e.SelfReferenceFlags)
}

// KeywordRecord is the occurrence count of a keyword in one stored page body.
type KeywordRecord struct {
	PageTitle       string `json:"page_title"`
	OccurrenceCount int    `json:"occurrence_count"`
	WeightedScore   int    `json:"weighted_score"`
}

// RankReport is the persisted outcome of one ranked crawl cycle.
type RankReport struct {
	ID        uuid.UUID       `json:"id"`
	CycleID   uuid.UUID       `json:"cycle_id"`
	Seed      string          `json:"seed"`
	Keyword   string          `json:"keyword"`
	Entries   []RankEntry     `json:"entries"`
	Keywords  []KeywordRecord `json:"keywords"`
	CreatedAt time.Time       `json:"created_at"`
}
