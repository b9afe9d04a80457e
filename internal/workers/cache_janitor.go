package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiringStore is a listing store that can drop its expired entries.
type ExpiringStore interface {
	DeleteExpired() int
}

// CacheJanitor sweeps expired listings out of the in-process store.
// Expired entries are already misses, so a sweep never changes what readers see.
type CacheJanitor struct {
	Store    ExpiringStore
	Interval time.Duration
	Logger   *zap.Logger
}

func NewCacheJanitor(store ExpiringStore, interval time.Duration, logger *zap.Logger) *CacheJanitor {
	return &CacheJanitor{
		Store:    store,
		Interval: interval,
		Logger:   logger,
	}
}

// Run blocks until ctx is cancelled.
func (w *CacheJanitor) Run(ctx context.Context) {
	w.Logger.Info("Cache janitor started", zap.Duration("interval", w.Interval))

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("Cache janitor stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CacheJanitor) sweep() {
	if n := w.Store.DeleteExpired(); n > 0 {
		w.Logger.Debug("Evicted expired listings", zap.Int("count", n))
	}
}
