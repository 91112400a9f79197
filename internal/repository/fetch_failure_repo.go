package repository

import (
	"context"

	"github.com/user/linkrank/internal/entity"
)

// FetchFailureRepository keeps an audit trail of pages that could not be fetched.
type FetchFailureRepository interface {
	Record(ctx context.Context, failure *entity.FetchFailure) error
}
