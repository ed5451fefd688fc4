package cache

import (
	"time"

	"budget/internal/core"
	"budget/internal/ledger"
)

// SummaryCache memoizes core.Summarize per snapshot version. Snapshots are
// immutable, so an entry never goes stale while its version is current.
type SummaryCache struct {
	lru *LRUCache[uint64, core.Summary]
}

func NewSummaryCache(size int, ttl time.Duration) *SummaryCache {
	return &SummaryCache{lru: NewLRUCache[uint64, core.Summary](size, ttl)}
}

// Summary returns the summary of snap, computing it on a miss.
func (c *SummaryCache) Summary(snap ledger.Snapshot) core.Summary {
	if s, ok := c.lru.Get(snap.Version()); ok {
		return s
	}
	s := core.Summarize(snap.Transactions())
	c.lru.Set(snap.Version(), s)
	return s
}

func (c *SummaryCache) CleanExpired() int {
	return c.lru.CleanExpired()
}

func (c *SummaryCache) Stats() (hits, misses int64) {
	return c.lru.Stats()
}
