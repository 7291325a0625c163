package pool

import (
	"context"
	"time"
)

// PooledMapper applies a function to a batch of inputs with bounded
// parallelism, keeps results in input order and measures how long the
// whole batch took.
//
// A PooledMapper only holds configuration. Every call to Run creates its
// own set of workers and tears it down before returning, so a mapper can be
// shared and reused freely and no pool state outlives a call.
//
// Type parameters:
//   - T: The input type
//   - R: The output type
type PooledMapper[T any, R any] struct {
	conf *config
}

// NewPooledMapper creates a mapper with the given options. No goroutines
// are started until Run is called.
//
// Default configuration:
//   - poolSize: runtime.GOMAXPROCS(0)
//   - taskBuffer: equal to poolSize
//   - dispatch: DispatchRoundRobin
//   - no deadline, no rate limit, per-item failure isolation
//
// Example:
//
//	mapper := NewPooledMapper[int64, bool](WithPoolSize(2))
//	batch, err := mapper.Run(ctx, workload.IsPrime, inputs)
func NewPooledMapper[T any, R any](opts ...Option) *PooledMapper[T, R] {
	return &PooledMapper[T, R]{
		conf: newConfig(opts...),
	}
}

// PoolSize returns the configured worker bound.
func (m *PooledMapper[T, R]) PoolSize() int {
	return m.conf.poolSize
}

// Run applies fn to every input using at most PoolSize concurrent workers
// and blocks until every input has a result slot.
//
// Parameters:
//   - ctx: Context for the batch; when it is done, dispatch stops as with WithDeadline
//   - fn: Function applied to each input
//   - inputs: Inputs to process, in order
//
// Returns:
//   - batch: One slot per input in input order, plus the elapsed time
//   - error: ErrInvalidPoolSize, ErrNilFunc or *WorkerStartupError when the
//     batch never ran (batch is nil); ErrDeadlineExceeded or the first
//     *ItemError under WithFailFast when it stopped early (batch is complete,
//     with ErrNotRun markers on skipped slots)
//
// A failing input never aborts its siblings unless WithFailFast is set:
// its slot carries an *ItemError and Run returns a nil error.
//
// Example:
//
//	batch, err := mapper.Run(ctx, workload.Sqrt, []float64{4, 9, 16})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(batch.Values(), batch.Elapsed)
func (m *PooledMapper[T, R]) Run(ctx context.Context, fn ProcessFunc[T, R], inputs []T) (*Batch[R], error) {
	if m.conf.poolSize < 1 {
		return nil, ErrInvalidPoolSize
	}
	if fn == nil {
		return nil, ErrNilFunc
	}

	obs := &observer{
		log: m.conf.logger.With().
			Int("pool_size", m.conf.poolSize).
			Int("inputs", len(inputs)).
			Logger(),
		metrics:    m.conf.metrics,
		onComplete: m.conf.onComplete,
		onPhase:    m.conf.onPhase,
	}
	obs.phase(PhaseIdle)

	if m.conf.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.conf.deadline)
		defer cancel()
	}

	start := time.Now()
	h := newPoolHandle(m.conf, fn, inputs, obs)
	batch, err := h.run(ctx)
	if batch == nil {
		return nil, err
	}

	batch.Elapsed = time.Since(start)
	m.conf.metrics.observeBatch(batch.Elapsed)
	obs.phase(PhaseDone)

	obs.log.Debug().
		Dur("elapsed", batch.Elapsed).
		Int("failed", len(batch.Failed())).
		Msg("batch finished")
	return batch, err
}

// Map is a one-shot helper: it builds a mapper with the given pool size and
// options and runs fn over inputs.
//
// Example:
//
//	batch, err := Map(ctx, workload.Sqrt, []float64{4, 9, 16}, 2)
//	// batch.Values() == []float64{2, 3, 4}
func Map[T any, R any](
	ctx context.Context,
	fn ProcessFunc[T, R],
	inputs []T,
	poolSize int,
	opts ...Option,
) (*Batch[R], error) {
	opts = append(opts[:len(opts):len(opts)], WithPoolSize(poolSize))
	return NewPooledMapper[T, R](opts...).Run(ctx, fn, inputs)
}
