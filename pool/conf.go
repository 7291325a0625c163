package pool

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DispatchMode selects how work items are handed to workers.
type DispatchMode int

const (
	// DispatchRoundRobin gives item i to worker i mod n through per-worker
	// queues.
	DispatchRoundRobin DispatchMode = iota

	// DispatchFirstAvailable puts every item on one shared queue; whichever
	// worker is idle first takes the next item.
	DispatchFirstAvailable
)

func (d DispatchMode) String() string {
	switch d {
	case DispatchRoundRobin:
		return "round-robin"
	case DispatchFirstAvailable:
		return "first-available"
	default:
		return "unknown"
	}
}

// Option is a functional option for configuring a PooledMapper.
type Option func(*config)

type config struct {
	poolSize        int
	taskBuffer      int
	dispatch        DispatchMode
	ratePerSecond   float64
	rateBurst       int
	failFast        bool
	deadline        time.Duration
	teardownTimeout time.Duration
	pinWorkers      bool
	strictPinning   bool
	workerInit      func(ctx context.Context, workerID int) error
	onComplete      func(CompletionEvent)
	onPhase         func(Phase)
	logger          zerolog.Logger
	metrics         *Metrics
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		poolSize: runtime.GOMAXPROCS(0),
		dispatch: DispatchRoundRobin,
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.taskBuffer <= 0 {
		cfg.taskBuffer = max(cfg.poolSize, 1)
	}
	return cfg
}

// WithPoolSize sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0). Values below one are
// rejected by Run with ErrInvalidPoolSize.
func WithPoolSize(n int) Option {
	return func(cfg *config) {
		cfg.poolSize = n
	}
}

// WithTaskBuffer sets the buffer size of each dispatch queue.
// If not specified, defaults to the pool size.
func WithTaskBuffer(size int) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.taskBuffer = size
		}
	}
}

// WithDispatch selects the dispatch mode. The default is DispatchRoundRobin.
func WithDispatch(mode DispatchMode) Option {
	return func(cfg *config) {
		cfg.dispatch = mode
	}
}

// WithRateLimit caps how many invocations start per second across the
// whole pool. burst is the number of invocations that may start at once.
// Every Run starts with a full bucket. Non-positive values leave the pool
// unthrottled.
//
// Example:
//
//	WithRateLimit(10, 5) // 10 invocations/sec with burst of 5
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *config) {
		if perSecond > 0 && burst > 0 {
			cfg.ratePerSecond = perSecond
			cfg.rateBurst = burst
		}
	}
}

// WithFailFast stops dispatching after the first failed item. Slots that
// were never dispatched carry ErrNotRun and Run returns the first failure
// alongside the batch.
func WithFailFast() Option {
	return func(cfg *config) {
		cfg.failFast = true
	}
}

// WithDeadline bounds the whole batch. On expiry the pool is torn down and
// Run returns ErrDeadlineExceeded with every slot filled so far intact.
func WithDeadline(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.deadline = d
		}
	}
}

// WithTeardownTimeout bounds how long Run waits for workers to exit once
// dispatch is over. Zero waits forever.
func WithTeardownTimeout(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.teardownTimeout = d
		}
	}
}

// WithCPUAffinity pins worker i to CPU i mod NumCPU for the duration of the
// batch. With strict set, a pinning failure aborts the batch with a
// WorkerStartupError; otherwise it is logged and ignored.
func WithCPUAffinity(strict bool) Option {
	return func(cfg *config) {
		cfg.pinWorkers = true
		cfg.strictPinning = strict
	}
}

// WithWorkerInit registers a hook run by every worker before it accepts
// work. An error aborts the batch with a WorkerStartupError.
func WithWorkerInit(fn func(ctx context.Context, workerID int) error) Option {
	return func(cfg *config) {
		cfg.workerInit = fn
	}
}

// WithCompletionHook registers a callback receiving one CompletionEvent per
// processed input.
func WithCompletionHook(fn func(CompletionEvent)) Option {
	return func(cfg *config) {
		cfg.onComplete = fn
	}
}

// WithPhaseObserver registers a callback receiving every lifecycle
// transition of a Run.
func WithPhaseObserver(fn func(Phase)) Option {
	return func(cfg *config) {
		cfg.onPhase = fn
	}
}

// WithLogger sets the logger used for lifecycle and completion events.
// The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}

// WithMetrics makes the mapper update the given collectors.
func WithMetrics(m *Metrics) Option {
	return func(cfg *config) {
		cfg.metrics = m
	}
}

// newLimiter builds a fresh token bucket for one Run, or nil when the pool
// is unthrottled.
func (cfg *config) newLimiter() *rate.Limiter {
	if cfg.ratePerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.ratePerSecond), cfg.rateBurst)
}
