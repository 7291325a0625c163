package pool

import (
	"context"
	"errors"
	"time"
)

// ProcessFunc is the unit of work applied to every input of a batch.
// It must not mutate state shared with other invocations and must be safe
// to call concurrently with itself. A non-nil error marks only the slot of
// the input it was called with.
//
// Type parameters:
//   - T: The type of input value
//   - R: The type of output value
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Result is one result slot of a batch. There is exactly one Result per
// input and Results[i] always belongs to inputs[i].
//
// Fields:
//   - Index: The position of the input in the original sequence
//   - Value: The output of the function (only meaningful if Err is nil)
//   - Err: The failure marker for this slot (nil on success)
//   - Worker: The id of the worker that computed the slot, -1 if it never ran
//   - Duration: Time spent inside the function for this input
type Result[R any] struct {
	Index    int
	Value    R
	Err      error
	Worker   int
	Duration time.Duration
}

// OK reports whether the slot holds a successful output.
func (r Result[R]) OK() bool {
	return r.Err == nil
}

// Batch is everything a single Run produces.
type Batch[R any] struct {
	// Results holds one slot per input, in input order.
	Results []Result[R]

	// Elapsed spans pool creation, dispatch, collection and teardown.
	Elapsed time.Duration

	// PoolSize is the configured worker bound the batch ran with.
	PoolSize int

	// TeardownErr is set when workers did not exit in time. Results are
	// still complete when it is set.
	TeardownErr error
}

// Values returns the outputs in input order. Failed slots contribute the
// zero value of R; use Failed or Err to tell them apart.
func (b *Batch[R]) Values() []R {
	out := make([]R, len(b.Results))
	for i, r := range b.Results {
		out[i] = r.Value
	}
	return out
}

// Failed returns the indices of slots carrying a failure marker.
func (b *Batch[R]) Failed() []int {
	var idx []int
	for _, r := range b.Results {
		if r.Err != nil {
			idx = append(idx, r.Index)
		}
	}
	return idx
}

// Err joins the failure markers of every failed slot, or returns nil when
// all slots succeeded.
func (b *Batch[R]) Err() error {
	var errs []error
	for _, r := range b.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}

// ElapsedSeconds is Elapsed expressed in seconds.
func (b *Batch[R]) ElapsedSeconds() float64 {
	return b.Elapsed.Seconds()
}

// workItem is one input tagged with its original position.
type workItem[T any] struct {
	index int
	value T
}

// report is what a worker sends back to the coordinator after running the
// function on a work item.
type report[R any] struct {
	index    int
	worker   int
	value    R
	err      error
	duration time.Duration
}
