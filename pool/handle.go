package pool

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// poolHandle is the live worker set of exactly one Run call. It is created
// when the call starts and every goroutine it owns is joined (or given up on
// after the teardown timeout) before the call returns.
type poolHandle[T any, R any] struct {
	conf   *config
	fn     ProcessFunc[T, R]
	inputs []T
	obs    *observer
	limit  *rate.Limiter

	workers int
	queues  []chan workItem[T]
	reports chan report[R]
	ready   chan error
	release chan struct{} // closed once every worker is ready

	g     errgroup.Group
	alive atomic.Int32
	done  chan struct{} // closed when every worker and the dispatcher returned
}

func newPoolHandle[T, R any](conf *config, fn ProcessFunc[T, R], inputs []T, obs *observer) *poolHandle[T, R] {
	n := min(conf.poolSize, len(inputs))

	// Round-robin gives every worker its own queue, first-available shares one.
	queueCount := n
	if conf.dispatch == DispatchFirstAvailable && n > 0 {
		queueCount = 1
	}

	h := &poolHandle[T, R]{
		conf:    conf,
		fn:      fn,
		inputs:  inputs,
		obs:     obs,
		limit:   conf.newLimiter(),
		workers: n,
		queues:  make([]chan workItem[T], queueCount),
		reports: make(chan report[R], len(inputs)),
		ready:   make(chan error, n),
		release: make(chan struct{}),
		done:    make(chan struct{}),
	}
	for i := range h.queues {
		h.queues[i] = make(chan workItem[T], conf.taskBuffer)
	}
	return h
}

// run drives the handle through dispatch, collection and teardown. A nil
// batch means the pool never came up.
func (h *poolHandle[T, R]) run(parent context.Context) (*Batch[R], error) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	h.obs.phase(PhaseDispatching)

	if err := h.start(ctx); err != nil {
		cancel()
		<-h.done
		h.obs.log.Error().Err(err).Msg("pool startup failed")
		return nil, err
	}
	close(h.release)

	h.obs.phase(PhaseCollecting)
	c := newCollector[R](len(h.inputs))
	var firstFailure error

collect:
	for c.received < len(h.inputs) {
		select {
		case r := <-h.reports:
			ev := c.fill(r)
			h.obs.completed(ev)
			if ev.Err != nil && h.conf.failFast && firstFailure == nil {
				firstFailure = c.slots[r.index].Err
				cancel()
			}
		case <-ctx.Done():
			break collect
		}
	}

	h.obs.phase(PhaseDraining)
	cancel()
	teardownErr := h.teardown()

	// In-flight items that finished while the pool was being torn down still
	// belong in their slots.
drain:
	for {
		select {
		case r := <-h.reports:
			h.obs.completed(c.fill(r))
		default:
			break drain
		}
	}

	batch := &Batch[R]{
		Results:     c.finish(),
		PoolSize:    h.conf.poolSize,
		TeardownErr: teardownErr,
	}

	switch {
	case firstFailure != nil:
		return batch, firstFailure
	case c.received < len(h.inputs) && parent.Err() != nil:
		return batch, fmt.Errorf("%w: %w", ErrDeadlineExceeded, parent.Err())
	default:
		return batch, nil
	}
}

// start launches the workers and the dispatcher, then waits until each
// worker either reported that it is ready or failed to come up. The
// dispatcher holds back until release is closed.
func (h *poolHandle[T, R]) start(ctx context.Context) error {
	for id := range h.workers {
		h.g.Go(func() error {
			return h.worker(ctx, id)
		})
	}
	h.g.Go(func() error {
		return h.dispatch(ctx)
	})
	go func() {
		_ = h.g.Wait()
		close(h.done)
	}()

	var startErr error
	for range h.workers {
		if err := <-h.ready; err != nil && startErr == nil {
			startErr = err
		}
	}
	return startErr
}

// teardown waits for every goroutine of the handle to exit. Workers stuck in
// the process function past the teardown timeout are reported, not killed.
func (h *poolHandle[T, R]) teardown() error {
	err := waitUntil(h.done, h.conf.teardownTimeout)
	if err == nil {
		return nil
	}

	terr := &TeardownError{Pending: int(h.alive.Load()), Err: err}
	h.obs.log.Error().Err(terr).Msg("pool teardown incomplete")
	return terr
}

// collector owns the result slots. Only the coordinating goroutine touches
// it, so slots need no locking.
type collector[R any] struct {
	slots    []Result[R]
	filled   []bool
	received int
}

func newCollector[R any](n int) *collector[R] {
	return &collector[R]{
		slots:  make([]Result[R], n),
		filled: make([]bool, n),
	}
}

func (c *collector[R]) fill(r report[R]) CompletionEvent {
	slot := Result[R]{
		Index:    r.index,
		Value:    r.value,
		Worker:   r.worker,
		Duration: r.duration,
	}
	if r.err != nil {
		slot.Err = &ItemError{Index: r.index, Err: r.err}
	}

	if !c.filled[r.index] {
		c.filled[r.index] = true
		c.received++
	}
	c.slots[r.index] = slot

	return CompletionEvent{
		Index:    r.index,
		Worker:   r.worker,
		Duration: r.duration,
		Err:      slot.Err,
	}
}

// finish marks every slot that never received a report and returns the
// slots in input order.
func (c *collector[R]) finish() []Result[R] {
	for i, ok := range c.filled {
		if !ok {
			c.slots[i] = Result[R]{
				Index:  i,
				Worker: -1,
				Err:    &ItemError{Index: i, Err: ErrNotRun},
			}
		}
	}
	return c.slots
}
