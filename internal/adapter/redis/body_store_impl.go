package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultBodyStoreKey = "linkrank:bodies"

// BodyStoreImpl keeps the body store in a single Redis string. APPEND gives
// the same append-only blob semantics as the flat file.
type BodyStoreImpl struct {
	client *redis.Client
	key    string
}

// NewBodyStore creates a new instance of BodyStoreImpl. An empty key falls
// back to the default.
func NewBodyStore(client *redis.Client, key string) *BodyStoreImpl {
	if key == "" {
		key = defaultBodyStoreKey
	}
	return &BodyStoreImpl{client: client, key: key}
}

// IsEmpty reports whether the key is absent or holds an empty string.
// STRLEN returns 0 for a missing key.
func (r *BodyStoreImpl) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.client.StrLen(ctx, r.key).Result()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Append adds content to the end of the stored string.
func (r *BodyStoreImpl) Append(ctx context.Context, content string) error {
	if content == "" {
		return nil
	}
	return r.client.Append(ctx, r.key, content).Err()
}

// ReadAll returns the stored string, or "" when the key does not exist.
func (r *BodyStoreImpl) ReadAll(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

// Truncate removes the key.
func (r *BodyStoreImpl) Truncate(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}
