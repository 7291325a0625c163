package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPoolSize is returned when the pool size is below one.
	ErrInvalidPoolSize = errors.New("pool size must be at least 1")

	// ErrNilFunc is returned when Run is called without a function.
	ErrNilFunc = errors.New("process function is nil")

	// ErrNotRun marks a slot whose input was never handed to a worker.
	ErrNotRun = errors.New("input was not processed")

	// ErrPanic is wrapped by item errors produced from a recovered panic.
	ErrPanic = errors.New("worker panic")

	// ErrDeadlineExceeded is returned when the batch deadline expired or the
	// caller's context was done before every input was processed.
	ErrDeadlineExceeded = errors.New("batch deadline exceeded")

	// ErrTeardownTimeout is wrapped by TeardownError when workers did not
	// exit within the teardown timeout.
	ErrTeardownTimeout = errors.New("error in shutting down: timeout reached")
)

// WorkerStartupError reports a worker that could not be brought up. It is
// fatal to the whole batch.
type WorkerStartupError struct {
	Worker int
	Err    error
}

func (e *WorkerStartupError) Error() string {
	return fmt.Sprintf("worker %d failed to start: %v", e.Worker, e.Err)
}

func (e *WorkerStartupError) Unwrap() error { return e.Err }

// ItemError is the failure marker stored in a result slot.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("input %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// TeardownError reports workers that were still running when the
// coordinator stopped waiting for them.
type TeardownError struct {
	Pending int
	Err     error
}

func (e *TeardownError) Error() string {
	return fmt.Sprintf("%d worker(s) did not terminate: %v", e.Pending, e.Err)
}

func (e *TeardownError) Unwrap() error { return e.Err }
