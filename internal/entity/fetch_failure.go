package entity

import (
	"time"

	"github.com/google/uuid"
)

// FetchFailure mirrors the `fetch_failures` PostgreSQL table schema.
type FetchFailure struct {
	ID            int64
	CycleID       uuid.UUID
	URL           string
	Stage         string // "crawl" or "load"
	FailureReason string
	AttemptedAt   time.Time
}
