package ledger

import (
	"slices"
	"sync"
	"time"

	"slot-booking/internal/domain/reservation"
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/clock"
)

type rangeKey struct {
	start slot.ID
	end   slot.ID
}

type cacheEntry struct {
	key        rangeKey
	records    []*reservation.Record
	capturedAt time.Time
}

// queryCache holds the result of the most recent query miss. It is a single
// entry keyed by the requested range; a miss for another range replaces it.
type queryCache struct {
	mu         sync.Mutex
	clock      clock.Clock
	ttl        time.Duration
	entry      *cacheEntry
	generation uint64
}

func newQueryCache(clk clock.Clock, ttl time.Duration) *queryCache {
	return &queryCache{clock: clk, ttl: ttl}
}

// get returns a copy of the cached records for key and the generation to
// pass to put after a miss.
func (c *queryCache) get(key rangeKey) ([]*reservation.Record, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil || c.entry.key != key {
		return nil, c.generation, false
	}
	if c.clock.Now().Sub(c.entry.capturedAt) >= c.ttl {
		c.entry = nil
		return nil, c.generation, false
	}
	return slices.Clone(c.entry.records), c.generation, true
}

// put stores records fetched while the cache was at generation gen. A fetch
// that overlapped an invalidation is dropped.
func (c *queryCache) put(key rangeKey, gen uint64, records []*reservation.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.ttl <= 0 {
		return
	}
	c.entry = &cacheEntry{
		key:        key,
		records:    slices.Clone(records),
		capturedAt: c.clock.Now(),
	}
}

func (c *queryCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = nil
	c.generation++
}
