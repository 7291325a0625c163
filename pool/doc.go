// Package pool provides a generic, order-preserving parallel map over a
// fixed-size pool of workers.
//
// The primary type is PooledMapper[T, R]. It applies a ProcessFunc[T, R] to
// every element of a slice using at most a configured number of concurrent
// workers, writes each output into the result slot of its input, and reports
// how long the whole batch took from pool creation to teardown.
//
// # Basic Usage
//
//	ctx := context.Background()
//	mapper := NewPooledMapper[float64, float64](WithPoolSize(2))
//	batch, err := mapper.Run(ctx, workload.Sqrt, []float64{4, 9, 16})
//	// batch.Values() == []float64{2, 3, 4}
//	// batch.Elapsed covers pool creation through teardown
//
// Or as a one-shot call:
//
//	batch, err := Map(ctx, workload.IsPrime, []int64{61, 67, 68}, 2)
//
// # Lifecycle
//
// Each Run creates its own workers and joins them before returning; nothing
// is shared between calls and no goroutine is started at import time. A run
// moves through PhaseIdle, PhaseDispatching, PhaseCollecting, PhaseDraining
// and PhaseDone, observable with WithPhaseObserver.
//
// # Dispatch
//
//   - DispatchRoundRobin (default): input i goes to worker i mod n
//   - DispatchFirstAvailable: a shared queue, the first idle worker wins
//
// # Error Handling
//
// A failing input never corrupts or aborts its siblings. Its slot carries an
// *ItemError (panics are recovered into one wrapping ErrPanic) and Run still
// returns a nil error; inspect Result.Err, Batch.Failed or Batch.Err.
//
// Run returns a nil batch only when the pool never ran: ErrInvalidPoolSize,
// ErrNilFunc or a *WorkerStartupError. With WithFailFast, WithDeadline or a
// cancelled context, Run returns a complete batch whose skipped slots carry
// ErrNotRun together with the reason. Workers that outlive
// WithTeardownTimeout are reported on Batch.TeardownErr.
//
// # Configuration Options
//
//   - WithPoolSize(n): Number of concurrent workers (default: GOMAXPROCS)
//   - WithTaskBuffer(n): Dispatch queue buffer (default: pool size)
//   - WithDispatch(mode): Round-robin or first-available dispatch
//   - WithRateLimit(perSecond, burst): Throttle invocations
//   - WithFailFast(): Stop dispatching after the first failure
//   - WithDeadline(d), WithTeardownTimeout(d): Bound the batch and its teardown
//   - WithCPUAffinity(strict): Pin each worker to a core
//   - WithWorkerInit(fn): Per-worker startup hook
//   - WithCompletionHook(fn), WithPhaseObserver(fn): Structured events
//   - WithLogger(l), WithMetrics(m): zerolog and Prometheus integration
package pool
