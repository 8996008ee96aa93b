package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamenart/catalog-service/internal/catalog"
)

type countingSource struct {
	mu    sync.Mutex
	loads map[catalog.Category]int
	fail  bool
}

func newCountingSource() *countingSource {
	return &countingSource{loads: make(map[catalog.Category]int)}
}

func (s *countingSource) Categories() []catalog.Category {
	return catalog.Categories()
}

func (s *countingSource) ProductsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.ProductRef, error) {
	s.mu.Lock()
	s.loads[cat]++
	fail := s.fail
	s.mu.Unlock()
	if fail {
		return nil, errors.New("source unavailable")
	}
	return []catalog.ProductRef{{ID: 1, Name: "Одиночный О-1"}}, nil
}

func (s *countingSource) loadCount(cat catalog.Category) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads[cat]
}

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestCachedSourceServesSnapshot(t *testing.T) {
	src := newCountingSource()
	c := NewCachedSource(src, time.Minute, 2, testLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		refs, err := c.ProductsByCategory(ctx, catalog.CategorySingle)
		require.NoError(t, err)
		assert.Len(t, refs, 1)
	}
	assert.Equal(t, 1, src.loadCount(catalog.CategorySingle), "repeated reads within TTL must hit the snapshot")
}

func TestCachedSourceExpiry(t *testing.T) {
	src := newCountingSource()
	c := NewCachedSource(src, 10*time.Millisecond, 2, testLogger())
	ctx := context.Background()

	_, err := c.ProductsByCategory(ctx, catalog.CategorySingle)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = c.ProductsByCategory(ctx, catalog.CategorySingle)
	require.NoError(t, err)
	assert.Equal(t, 2, src.loadCount(catalog.CategorySingle), "an expired snapshot must load through")
}

func TestCachedSourceInvalidate(t *testing.T) {
	src := newCountingSource()
	c := NewCachedSource(src, time.Minute, 2, testLogger())
	ctx := context.Background()

	_, err := c.ProductsByCategory(ctx, catalog.CategorySingle)
	require.NoError(t, err)

	c.Invalidate(catalog.CategorySingle)

	_, err = c.ProductsByCategory(ctx, catalog.CategorySingle)
	require.NoError(t, err)
	assert.Equal(t, 2, src.loadCount(catalog.CategorySingle))
}

func TestCachedSourcePropagatesLoadErrors(t *testing.T) {
	src := newCountingSource()
	src.fail = true
	c := NewCachedSource(src, time.Minute, 2, testLogger())

	_, err := c.ProductsByCategory(context.Background(), catalog.CategorySingle)
	assert.Error(t, err, "load errors must reach the uniqueness checker's fail-open rule")
}

func TestCachedSourceWarm(t *testing.T) {
	src := newCountingSource()
	c := NewCachedSource(src, time.Minute, 2, testLogger())

	c.Warm(context.Background())

	for _, cat := range catalog.Categories() {
		assert.Equal(t, 1, src.loadCount(cat))
	}

	// Post-warmup reads are all snapshot hits.
	var hits atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ProductsByCategory(context.Background(), catalog.CategorySingle); err == nil {
				hits.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(10), hits.Load())
	assert.Equal(t, 1, src.loadCount(catalog.CategorySingle))
}
