package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/user/linkrank/internal/entity"
)

var ErrReportNotFound = errors.New("rank report not found")

// RankReportRepository defines the interface for storing ranking outcomes.
type RankReportRepository interface {
	// Save stores a report together with its entries.
	Save(ctx context.Context, report *entity.RankReport) error
	// FindByID retrieves a report by id, returning ErrReportNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RankReport, error)
}
