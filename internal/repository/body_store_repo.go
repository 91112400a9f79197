package repository

import "context"

// BodyStore is the append-only text blob holding page titles and bodies.
type BodyStore interface {
	// IsEmpty reports whether the store is absent or holds zero bytes.
	IsEmpty(ctx context.Context) (bool, error)
	// Append adds encoded records to the end of the store.
	Append(ctx context.Context, content string) error
	// ReadAll returns the whole store content.
	ReadAll(ctx context.Context) (string, error)
	// Truncate empties the store.
	Truncate(ctx context.Context) error
}
