package listing

import (
	"context"
	"time"

	postEntity "yatube/internal/core/post"
)

// Store keeps materialized post listings with an expiry. Implementations
// must be safe for concurrent use.
type Store interface {
	// Get reports found=false for missing and expired keys.
	Get(ctx context.Context, key string) (posts []postEntity.Post, found bool, err error)
	Set(ctx context.Context, key string, posts []postEntity.Post, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}
