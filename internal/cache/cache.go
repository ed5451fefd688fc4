// Package cache holds the in-process caches used by the HTTP layer.
package cache

import (
	"context"
	"time"

	applog "budget/internal/log"
)

// Cache defines a generic cache interface
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, data V)
	Delete(key K)
	Size() int
}

// Cleaner is implemented by caches that expire entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically cleans every registered cache.
type Manager struct {
	caches []Cleaner
	logger *applog.Logger
}

// NewManager creates a new cache manager
func NewManager(logger *applog.Logger, caches ...Cleaner) *Manager {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Manager{
		caches: caches,
		logger: logger.WithComponent(applog.ComponentCache),
	}
}

// CleanOnce runs a single cleanup pass and returns the number of entries
// removed.
func (m *Manager) CleanOnce() int {
	total := 0
	for _, c := range m.caches {
		total += c.CleanExpired()
	}
	return total
}

// Run cleans the caches every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.CleanOnce(); n > 0 {
				m.logger.Debug("Expired cache entries removed", "count", n)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
