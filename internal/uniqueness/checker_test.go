package uniqueness

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamenart/catalog-service/internal/catalog"
)

// mockSource is a controllable CategorySource for testing.
type mockSource struct {
	mu       sync.Mutex
	products map[catalog.Category][]catalog.ProductRef
	failures map[catalog.Category]error
	queried  []catalog.Category

	// blockFirst, when set, makes the first ProductsByCategory call wait
	// until released.
	blockFirst chan struct{}
	entered    chan struct{}
	calls      int
}

func newMockSource() *mockSource {
	return &mockSource{
		products: make(map[catalog.Category][]catalog.ProductRef),
		failures: make(map[catalog.Category]error),
	}
}

func (m *mockSource) Categories() []catalog.Category {
	return catalog.Categories()
}

func (m *mockSource) ProductsByCategory(ctx context.Context, cat catalog.Category) ([]catalog.ProductRef, error) {
	m.mu.Lock()
	m.calls++
	first := m.calls == 1
	m.queried = append(m.queried, cat)
	block := m.blockFirst
	entered := m.entered
	m.mu.Unlock()

	if first && block != nil {
		if entered != nil {
			close(entered)
		}
		<-block
	}

	if err, ok := m.failures[cat]; ok {
		return nil, err
	}
	return m.products[cat], nil
}

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestCheckSelfExclusionAndCaseInsensitivity(t *testing.T) {
	src := newMockSource()
	src.products[catalog.CategorySingle] = []catalog.ProductRef{
		{ID: 5, Name: "Одиночный О-1"},
	}
	checker := NewChecker(src, testLogger())
	ctx := context.Background()

	five := int64(5)
	seven := int64(7)

	assert.True(t, checker.Check(ctx, "одиночный о-1", &five),
		"editing the record itself must not collide with its own name")
	assert.False(t, checker.Check(ctx, "одиночный о-1", nil))
	assert.False(t, checker.Check(ctx, "одиночный о-1", &seven))
	assert.False(t, checker.Check(ctx, "  ОДИНОЧНЫЙ   О-1  ", nil),
		"whitespace and case must not affect matching")
}

func TestCheckEmptyNameAlwaysUnique(t *testing.T) {
	src := newMockSource()
	checker := NewChecker(src, testLogger())

	assert.True(t, checker.Check(context.Background(), "", nil))
	assert.True(t, checker.Check(context.Background(), "   ", nil))
	assert.Zero(t, src.calls, "empty names must not trigger a scan")
}

func TestCheckShortCircuitsOnFirstMatch(t *testing.T) {
	src := newMockSource()
	src.products[catalog.CategorySingle] = []catalog.ProductRef{{ID: 1, Name: "Стела С-2"}}
	checker := NewChecker(src, testLogger())

	assert.False(t, checker.Check(context.Background(), "стела с-2", nil))
	require.Len(t, src.queried, 1, "scan must stop at the first matching category")
	assert.Equal(t, catalog.CategorySingle, src.queried[0])
}

func TestCheckScansAllCategoriesWhenUnique(t *testing.T) {
	src := newMockSource()
	checker := NewChecker(src, testLogger())

	assert.True(t, checker.Check(context.Background(), "Новое имя", nil))
	assert.Equal(t, catalog.Categories(), src.queried, "scan must walk categories sequentially, in order")
}

func TestCheckFailsOpenOnSourceError(t *testing.T) {
	src := newMockSource()
	src.failures[catalog.CategorySingle] = errors.New("connection refused")
	// A duplicate exists in a later category, but the scan fails open before
	// reaching it.
	src.products[catalog.CategoryDouble] = []catalog.ProductRef{{ID: 9, Name: "Двойной Д-4"}}
	checker := NewChecker(src, testLogger())

	assert.True(t, checker.Check(context.Background(), "двойной д-4", nil),
		"a source failure must report unique, not block the operator")
}

func TestGenerationGateOrdering(t *testing.T) {
	var g generationGate

	assert.True(t, g.admit(1))
	assert.True(t, g.admit(3), "a newer resolution always wins")
	assert.False(t, g.admit(2), "a stale resolution must not overwrite a newer one")
	assert.False(t, g.admit(3), "a generation delivers at most once")
	assert.True(t, g.admit(4))
}

func TestDebouncerCoalescesKeystrokes(t *testing.T) {
	src := newMockSource()
	checker := NewChecker(src, testLogger())

	var mu sync.Mutex
	var results []Result
	d := NewDebouncer(checker, 20*time.Millisecond, func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	})

	ctx := context.Background()
	d.Schedule(ctx, "Одиночный О", nil)
	d.Schedule(ctx, "Одиночный О-", nil)
	gen := d.Schedule(ctx, "Одиночный О-1", nil)

	d.Flush()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 1, "a keystroke burst must produce a single check")
	assert.Equal(t, "Одиночный О-1", results[0].Name)
	assert.Equal(t, gen, results[0].Generation)
	assert.True(t, results[0].Unique)
}

// A superseded check resolving after a newer one has delivered must not
// overwrite the newer result, even though both were legitimately in flight.
func TestDebouncerStaleResultDiscarded(t *testing.T) {
	src := newMockSource()
	src.blockFirst = make(chan struct{})
	src.entered = make(chan struct{})
	checker := NewChecker(src, testLogger())

	var mu sync.Mutex
	var results []Result
	delivered := make(chan struct{}, 2)
	d := NewDebouncer(checker, time.Millisecond, func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
		delivered <- struct{}{}
	})

	ctx := context.Background()
	d.Schedule(ctx, "Медленный", nil)

	// Wait until the slow scan is inside the source, then type again.
	select {
	case <-src.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first check never started")
	}
	newer := d.Schedule(ctx, "Быстрый", nil)

	// The newer check completes while the older one is still blocked.
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("newer check never delivered")
	}

	close(src.blockFirst)
	d.Flush()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 1, "the stale resolution must be discarded at the gate")
	assert.Equal(t, "Быстрый", results[0].Name)
	assert.Equal(t, newer, results[0].Generation)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	src := newMockSource()
	checker := NewChecker(src, testLogger())

	d := NewDebouncer(checker, 50*time.Millisecond, func(Result) {
		t.Error("canceled check must not deliver")
	})

	d.Schedule(context.Background(), "Одиночный О-1", nil)
	d.Stop()
	d.Flush()

	assert.Zero(t, src.calls, "canceled check must never hit the source")
}
