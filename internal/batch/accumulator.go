package batch

import (
	"sync"
	"time"

	"otlp2parquet/internal/apierr"
	"otlp2parquet/internal/convert"
)

// residencyMultiplier is the backpressure ceiling expressed as a multiple
// of max_bytes: total accumulator residency must never exceed
// 8×max_bytes (spec §8 invariant; §4.4 step "backpressure check").
const residencyMultiplier = 8

// Accumulator groups converted batches by Key, merges them under a
// single mutex, and flushes completed buffers either when a threshold is
// crossed during Ingest or when the periodic sweeper finds one expired.
type Accumulator struct {
	cfg Config

	// OnFlush, if set, is invoked with
	// every batch the sweeper flushes on its own schedule (as opposed to
	// a flush returned synchronously from Ingest). Never called while
	// holding the accumulator's mutex.
	OnFlush func([]Completed)

	mu         sync.Mutex
	buffers    map[Key]*buffer
	totalBytes int

	stop    chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// NewAccumulator constructs an Accumulator and starts its sweeper
// goroutine. Call Close to stop the sweeper and release its goroutine.
func NewAccumulator(cfg Config) *Accumulator {
	a := &Accumulator{
		cfg:     cfg,
		buffers: make(map[Key]*buffer),
		stop:    make(chan struct{}),
	}
	if cfg.Enabled {
		a.wg.Add(1)
		go a.sweepLoop()
	}
	return a
}

// Ingest merges g into its (service, bucket) buffer, creating one if
// absent, and returns any buffers that crossed a flush threshold as a
// result (spec §4.4 steps 1–5). A zero-row group is a no-op.
//
// When the accumulator is configured with Enabled=false, Ingest bypasses
// the buffer map entirely: the group converts straight to a single
// Completed, one file per request, never touching the residency
// bookkeeping or backpressure check that only make sense for buffered
// data (spec §4.4: "enabled=false — ingest bypasses the accumulator
// entirely").
func (a *Accumulator) Ingest(g convert.Group) ([]Completed, error) {
	if g.Metadata.RecordCount == 0 {
		return nil, nil
	}

	if !a.cfg.Enabled {
		return []Completed{passthrough(g)}, nil
	}

	key := KeyFor(g.Metadata.ServiceName, g.Metadata.MinTimestampMicros)
	now := time.Now()

	a.mu.Lock()

	incomingBytes := 0
	for _, rb := range g.Batches {
		incomingBytes += rb.EstimatedBytes()
	}
	if a.totalBytes+incomingBytes > residencyMultiplier*a.cfg.MaxBytes {
		a.mu.Unlock()
		return nil, apierr.New(apierr.Backpressure, "accumulator residency ceiling exceeded").
			WithHint("retry after the sweeper flushes outstanding buffers")
	}

	buf, ok := a.buffers[key]
	if !ok {
		buf = newBuffer(key, g, now)
		a.buffers[key] = buf
	} else {
		buf.add(g)
	}
	a.totalBytes += incomingBytes

	var completed []Completed
	if buf.shouldFlush(a.cfg, now) {
		delete(a.buffers, key)
		a.totalBytes -= buf.totalBytes
		completed = append(completed, buf.finalize())
	}

	a.mu.Unlock()
	return completed, nil
}

// DrainExpired flushes every buffer whose age has crossed max_age,
// without otherwise disturbing younger buffers. Idempotent: a second
// call with no intervening Ingest returns nothing (spec §8).
func (a *Accumulator) DrainExpired() []Completed {
	now := time.Now()

	a.mu.Lock()
	defer a.mu.Unlock()

	var completed []Completed
	for key, buf := range a.buffers {
		if now.Sub(buf.createdAt) >= a.cfg.MaxAge {
			delete(a.buffers, key)
			a.totalBytes -= buf.totalBytes
			completed = append(completed, buf.finalize())
		}
	}
	return completed
}

// DrainAll unconditionally flushes every remaining buffer, used at
// shutdown so no ingested row is lost (spec §8: "no buffer survives
// drain_all").
func (a *Accumulator) DrainAll() []Completed {
	a.mu.Lock()
	defer a.mu.Unlock()

	completed := make([]Completed, 0, len(a.buffers))
	for key, buf := range a.buffers {
		delete(a.buffers, key)
		completed = append(completed, buf.finalize())
	}
	a.totalBytes = 0
	return completed
}

// Stats reports the live totals across every buffer, useful for metrics
// and for tests asserting the accumulator's bookkeeping invariant.
func (a *Accumulator) Stats() (totalRows, totalBytes, bufferCount int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, buf := range a.buffers {
		totalRows += buf.totalRows
	}
	return totalRows, a.totalBytes, len(a.buffers)
}

func (a *Accumulator) sweepInterval() time.Duration {
	d := a.cfg.MaxAge / 2
	if d < time.Second {
		d = time.Second
	}
	return d
}

// sweepLoop periodically calls DrainExpired, handing its result to
// OnFlush if set. It never holds the mutex across any I/O: DrainExpired
// only ever mutates the in-memory map.
func (a *Accumulator) sweepLoop() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.sweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			flushed := a.DrainExpired()
			if len(flushed) > 0 && a.OnFlush != nil {
				a.OnFlush(flushed)
			}
		}
	}
}

// Close stops the sweeper goroutine and waits for it to exit. It does
// not drain outstanding buffers — call DrainAll after Close during
// shutdown.
func (a *Accumulator) Close() {
	a.stopped.Do(func() { close(a.stop) })
	a.wg.Wait()
}
