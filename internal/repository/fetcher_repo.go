package repository

import (
	"context"
	"errors"

	"github.com/user/linkrank/internal/entity"
)

var (
	// ErrFetchFailed wraps every network or parse failure returned by a Fetcher.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrNoResource is returned when a page has no title or no body to offer.
	ErrNoResource = errors.New("no resource")
)

// Fetcher defines the contract for retrieving and parsing a single page.
type Fetcher interface {
	// Fetch retrieves url and returns its title, style text, markup and anchors.
	Fetch(ctx context.Context, url string) (*entity.Document, error)
}
