// Package cache decorates a uniqueness.CategorySource with per-category
// snapshots so keystroke-driven name scans do not hammer the backing store.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/kamenart/catalog-service/internal/catalog"
	"github.com/kamenart/catalog-service/internal/uniqueness"
)

// snapshot is an immutable per-category product list. It is built off-lock
// and swapped atomically.
type snapshot struct {
	refs     []catalog.ProductRef
	loadedAt time.Time
}

// CachedSource serves category product lists from TTL-bounded snapshots,
// loading through to the underlying source on miss or expiry. Concurrent
// warmup loads are bounded by a semaphore; concurrent readers of a stale
// category dedupe onto a single load.
type CachedSource struct {
	source uniqueness.CategorySource
	ttl    time.Duration
	logger *zerolog.Logger

	mu         sync.Mutex
	categories map[catalog.Category]*atomic.Value // *snapshot
	loading    map[catalog.Category]chan struct{}

	warmupSem *semaphore.Weighted
}

// NewCachedSource wraps source with snapshot caching. maxConcurrentLoads
// bounds warmup parallelism.
func NewCachedSource(source uniqueness.CategorySource, ttl time.Duration, maxConcurrentLoads int64, logger *zerolog.Logger) *CachedSource {
	if maxConcurrentLoads < 1 {
		maxConcurrentLoads = 1
	}
	return &CachedSource{
		source:     source,
		ttl:        ttl,
		logger:     logger,
		categories: make(map[catalog.Category]*atomic.Value),
		loading:    make(map[catalog.Category]chan struct{}),
		warmupSem:  semaphore.NewWeighted(maxConcurrentLoads),
	}
}

// Categories implements uniqueness.CategorySource.
func (c *CachedSource) Categories() []catalog.Category {
	return c.source.Categories()
}

// ProductsByCategory implements uniqueness.CategorySource from the snapshot,
// loading through on miss or expiry. Load errors propagate so the uniqueness
// checker can apply its fail-open rule.
func (c *CachedSource) ProductsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.ProductRef, error) {
	if snap := c.current(cat); snap != nil && time.Since(snap.loadedAt) < c.ttl {
		return snap.refs, nil
	}
	return c.load(ctx, cat)
}

func (c *CachedSource) current(cat catalog.Category) *snapshot {
	c.mu.Lock()
	holder := c.categories[cat]
	c.mu.Unlock()
	if holder == nil {
		return nil
	}
	snap, _ := holder.Load().(*snapshot)
	return snap
}

// load fetches one category, deduplicating concurrent loads of the same
// category onto a single fetch.
func (c *CachedSource) load(ctx context.Context, cat catalog.Category) ([]catalog.ProductRef, error) {
	c.mu.Lock()
	if ch, inFlight := c.loading[cat]; inFlight {
		c.mu.Unlock()
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if snap := c.current(cat); snap != nil {
			return snap.refs, nil
		}
		// The deduped load failed; fall through to a fresh attempt.
		return c.load(ctx, cat)
	}
	ch := make(chan struct{})
	c.loading[cat] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.loading, cat)
		c.mu.Unlock()
		close(ch)
	}()

	if err := c.warmupSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.warmupSem.Release(1)

	start := time.Now()
	refs, err := c.source.ProductsByCategory(ctx, cat)
	if err != nil {
		c.logger.Warn().Err(err).Str("category", string(cat)).Msg("Category snapshot load failed")
		return nil, err
	}

	c.store(cat, &snapshot{refs: refs, loadedAt: time.Now()})
	c.logger.Debug().
		Str("category", string(cat)).
		Int("products", len(refs)).
		Dur("took", time.Since(start)).
		Msg("Category snapshot loaded")
	return refs, nil
}

func (c *CachedSource) store(cat catalog.Category, snap *snapshot) {
	c.mu.Lock()
	holder := c.categories[cat]
	if holder == nil {
		holder = &atomic.Value{}
		c.categories[cat] = holder
	}
	c.mu.Unlock()
	holder.Store(snap)
}

// Warm preloads every category. Individual failures are logged and skipped;
// the cache stays usable with partial coverage.
func (c *CachedSource) Warm(ctx context.Context) {
	var wg sync.WaitGroup
	for _, cat := range c.source.Categories() {
		wg.Add(1)
		go func(cat catalog.Category) {
			defer wg.Done()
			if _, err := c.load(ctx, cat); err != nil {
				c.logger.Warn().Err(err).Str("category", string(cat)).Msg("Warmup load failed")
			}
		}(cat)
	}
	wg.Wait()
}

// Invalidate drops the snapshot for one category, forcing the next read to
// load through. Called after an admin pricing write.
func (c *CachedSource) Invalidate(cat catalog.Category) {
	c.mu.Lock()
	delete(c.categories, cat)
	c.mu.Unlock()
}
