package uniqueness

import (
	"context"
	"sync"
	"time"
)

// Result is delivered to the Debouncer's callback for the winning check.
type Result struct {
	Name       string
	Unique     bool
	Generation uint64
}

// generationGate enforces the ordering guarantee: only the result of the
// highest-numbered request resolved so far may be delivered. Two checks can
// legitimately be in flight at once (a keystroke arriving after a slow scan
// already started), so supersession is decided by generation at resolution
// time, not by timer identity.
type generationGate struct {
	mu        sync.Mutex
	delivered uint64
}

// admit reports whether gen may be delivered, and records it if so.
func (g *generationGate) admit(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen <= g.delivered {
		return false
	}
	g.delivered = gen
	return true
}

// Debouncer schedules a uniqueness check after a quiet period. Each new
// Schedule call invalidates the pending timer and bumps the generation; a
// check that resolves after being superseded is discarded.
//
// Cancellation is logical only: an in-flight scan is never aborted, its
// result is simply dropped at the gate.
type Debouncer struct {
	checker *Checker
	quiet   time.Duration
	onDone  func(Result)

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	gate       generationGate
	inflight   sync.WaitGroup
}

// NewDebouncer creates a debouncer delivering winning results to onDone.
func NewDebouncer(checker *Checker, quiet time.Duration, onDone func(Result)) *Debouncer {
	return &Debouncer{checker: checker, quiet: quiet, onDone: onDone}
}

// Schedule registers a keystroke: it cancels any pending (not yet started)
// check and schedules a fresh one after the quiet period. Returns the
// generation assigned to this request.
func (d *Debouncer) Schedule(ctx context.Context, name string, excludeID *int64) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil && d.timer.Stop() {
		// The superseded check never started; release its flight slot.
		d.inflight.Done()
	}
	d.generation++
	gen := d.generation

	d.inflight.Add(1)
	d.timer = time.AfterFunc(d.quiet, func() {
		defer d.inflight.Done()
		unique := d.checker.Check(ctx, name, excludeID)
		if !d.gate.admit(gen) {
			checksSuperseded.Inc()
			return
		}
		d.onDone(Result{Name: name, Unique: unique, Generation: gen})
	})
	return gen
}

// Flush blocks until every scheduled check has either delivered or been
// discarded. Pending timers still fire; Flush does not cancel them.
func (d *Debouncer) Flush() {
	d.inflight.Wait()
}

// Stop cancels the pending timer, if any. Checks already running are not
// interrupted; their results are dropped or delivered per the gate as usual.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		if d.timer.Stop() {
			d.inflight.Done()
		}
		d.timer = nil
	}
}
