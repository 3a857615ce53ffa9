package cardsearch

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"

	"github.com/osse101/DeckBuilder_Go/internal/domain"
	"github.com/osse101/DeckBuilder_Go/internal/metrics"
)

// CacheStats reports search cache usage
type CacheStats struct {
	Size   int    `json:"size"`
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
}

// CachingSearcher memoizes a Searcher's results per case-folded query, so
// repeating a query within the TTL resolves to the same first candidate.
// Failed searches are not cached.
type CachingSearcher struct {
	next     Searcher
	lru      *expirable.LRU[string, []domain.CardData]
	inflight singleflight.Group
	// callTimeout bounds the shared upstream call
	callTimeout time.Duration
	hits        atomic.Uint64
	misses      atomic.Uint64
}

// NewCachingSearcher wraps next with a result cache
func NewCachingSearcher(next Searcher, size int, ttl time.Duration) *CachingSearcher {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &CachingSearcher{
		next:        next,
		lru:         expirable.NewLRU[string, []domain.CardData](size, nil, ttl),
		callTimeout: SharedSearchTimeout,
	}
}

// Search returns cached results when present, otherwise delegates.
// Concurrent misses for the same key share one upstream call. The shared
// call is detached from any single caller's cancellation, and each caller
// stops waiting only when its own context ends.
func (c *CachingSearcher) Search(ctx context.Context, query string) ([]domain.CardData, error) {
	key := c.key(query)
	if cached, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		metrics.CardSearchCacheLookups.WithLabelValues(metrics.ResultHit).Inc()
		return cloneResults(cached), nil
	}
	c.misses.Add(1)
	metrics.CardSearchCacheLookups.WithLabelValues(metrics.ResultMiss).Inc()

	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(shared, c.callTimeout)
		defer cancel()
		results, err := c.next.Search(callCtx, query)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, cloneResults(results))
		return results, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneResults(res.Val.([]domain.CardData)), nil
	}
}

// Stats returns cache counters
func (c *CachingSearcher) Stats() CacheStats {
	return CacheStats{
		Size:   c.lru.Len(),
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

// Purge drops every cached result
func (c *CachingSearcher) Purge() {
	c.lru.Purge()
}

// key normalizes whitespace and case. A Caser is stateful, so each call
// gets its own.
func (c *CachingSearcher) key(query string) string {
	return cases.Fold().String(strings.Join(strings.Fields(query), " "))
}

func cloneResults(in []domain.CardData) []domain.CardData {
	out := make([]domain.CardData, len(in))
	copy(out, in)
	return out
}
