package memory

import (
	"context"
	"slices"
	"time"

	postEntity "yatube/internal/core/post"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	posts     []postEntity.Post
	expiresAt time.Time
}

// ListingStore is an in-process listing store. Entries carry their own
// expiry; the LRU bound only matters when more keys exist than fit.
type ListingStore struct {
	cache *lru.Cache[string, entry]
	now   func() time.Time
}

func NewListingStore(size int) (*ListingStore, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &ListingStore{cache: c, now: time.Now}, nil
}

// WithClock replaces the time source, used by tests to move past a TTL.
func (s *ListingStore) WithClock(now func() time.Time) *ListingStore {
	s.now = now
	return s
}

func (s *ListingStore) Get(_ context.Context, key string) ([]postEntity.Post, bool, error) {
	e, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !s.now().Before(e.expiresAt) {
		s.cache.Remove(key)
		return nil, false, nil
	}
	return slices.Clone(e.posts), true, nil
}

func (s *ListingStore) Set(_ context.Context, key string, posts []postEntity.Post, ttl time.Duration) error {
	s.cache.Add(key, entry{
		posts:     slices.Clone(posts),
		expiresAt: s.now().Add(ttl),
	})
	return nil
}

func (s *ListingStore) Delete(_ context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}

func (s *ListingStore) Flush(_ context.Context) error {
	s.cache.Purge()
	return nil
}

// DeleteExpired drops every expired entry and returns how many were removed.
func (s *ListingStore) DeleteExpired() int {
	now := s.now()
	removed := 0
	for _, key := range s.cache.Keys() {
		e, ok := s.cache.Peek(key)
		if ok && !now.Before(e.expiresAt) {
			s.cache.Remove(key)
			removed++
		}
	}
	return removed
}

// Len is the number of entries currently held, expired or not.
func (s *ListingStore) Len() int {
	return s.cache.Len()
}
