package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube/internal/config"
	postEntity "yatube/internal/core/post"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// DefaultPrefix namespaces listing keys inside a shared redis database.
const DefaultPrefix = "yatube:"

// ListingStoreRedis keeps listings in redis so several processes share them.
// Expiry is delegated to redis key TTLs.
type ListingStoreRedis struct {
	Client *redis.Client
	Prefix string
}

func NewListingStoreRedis(client *redis.Client) *ListingStoreRedis {
	return &ListingStoreRedis{
		Client: client,
		Prefix: DefaultPrefix,
	}
}

func (r *ListingStoreRedis) Get(ctx context.Context, key string) ([]postEntity.Post, bool, error) {
	raw, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var posts []postEntity.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		// A value we cannot decode is treated as a miss and overwritten.
		config.Logger.Warn("Dropping undecodable listing", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	return posts, true, nil
}

func (r *ListingStoreRedis) Set(ctx context.Context, key string, posts []postEntity.Post, ttl time.Duration) error {
	if posts == nil {
		posts = []postEntity.Post{}
	}
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode listing %s: %w", key, err)
	}
	if err := r.Client.Set(ctx, r.Prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *ListingStoreRedis) Delete(ctx context.Context, key string) error {
	return r.Client.Del(ctx, r.Prefix+key).Err()
}

// Flush removes every key under Prefix. Other keys in the database are left alone.
func (r *ListingStoreRedis) Flush(ctx context.Context) error {
	iter := r.Client.Scan(ctx, 0, r.Prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	config.Logger.Info("Flushing listing cache", zap.Int("keys", len(keys)))
	return r.Client.Del(ctx, keys...).Err()
}
