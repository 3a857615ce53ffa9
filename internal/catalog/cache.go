package catalog

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/metrics"
)

// CacheStats reports catalog cache usage
type CacheStats struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// cardCache is an LRU of committed card definitions keyed by MID.
// Definitions never change once stored, so entries cannot go stale;
// the TTL only bounds memory held by rarely used cards.
type cardCache struct {
	lru    *expirable.LRU[string, domain.CardDefinition]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func newCardCache(size int, ttl time.Duration) *cardCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &cardCache{
		lru: expirable.NewLRU[string, domain.CardDefinition](size, nil, ttl),
	}
}

func (c *cardCache) Get(mid string) (domain.CardDefinition, bool) {
	card, ok := c.lru.Get(mid)
	if ok {
		c.hits.Add(1)
		metrics.CatalogCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
	} else {
		c.misses.Add(1)
		metrics.CatalogCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()
	}
	return card, ok
}

func (c *cardCache) Add(card domain.CardDefinition) {
	c.lru.Add(card.MID, card)
}

func (c *cardCache) Stats() CacheStats {
	return CacheStats{
		Size:   c.lru.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
