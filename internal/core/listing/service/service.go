package listingapp

import (
	"context"
	"fmt"
	"time"

	"yatube/internal/config"
	postEntity "yatube/internal/core/post"
	listingPort "yatube/internal/ports/listing"

	"go.uber.org/zap"
)

// Loader fetches a listing from the database on a cache miss.
type Loader func(ctx context.Context) ([]postEntity.Post, error)

// ListingService caches the expensive listing queries. Writes never
// invalidate it: entries go stale until their TTL runs out or someone
// calls Invalidate/InvalidateAll.
type ListingService struct {
	Store listingPort.Store
	TTL   time.Duration
}

func NewListingService(store listingPort.Store, ttl time.Duration) *ListingService {
	return &ListingService{
		Store: store,
		TTL:   ttl,
	}
}

// GetOrPopulate returns the cached listing for key or loads and stores it
// with expiry now+ttl. Concurrent misses may both load; the last write wins.
func (s *ListingService) GetOrPopulate(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]postEntity.Post, error) {
	posts, found, err := s.Store.Get(ctx, key)
	if err != nil {
		// The store is an optimisation; fall through to the database.
		config.Logger.Warn("Listing cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return posts, nil
	}

	posts, err = loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", key, err)
	}

	if err := s.Store.Set(ctx, key, posts, ttl); err != nil {
		config.Logger.Warn("Listing cache write failed", zap.String("key", key), zap.Error(err))
	}
	return posts, nil
}

// Get is GetOrPopulate with the service's default TTL.
func (s *ListingService) Get(ctx context.Context, key string, loader Loader) ([]postEntity.Post, error) {
	return s.GetOrPopulate(ctx, key, s.TTL, loader)
}

func (s *ListingService) Invalidate(ctx context.Context, key string) error {
	return s.Store.Delete(ctx, key)
}

func (s *ListingService) InvalidateAll(ctx context.Context) error {
	config.Logger.Info("Invalidating every cached listing")
	return s.Store.Flush(ctx)
}
