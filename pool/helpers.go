package pool

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// callWithRecovery runs fn on a single input. A panic inside fn is turned
// into an error wrapping ErrPanic with the stack trace, so one bad input
// cannot take its worker, or the batch, down with it.
func callWithRecovery[T, R any](ctx context.Context, fn ProcessFunc[T, R], input T) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			var zero R
			result = zero
			err = fmt.Errorf("%w: %v\nstack trace:\n%s", ErrPanic, r, buf[:n])
		}
	}()

	return fn(ctx, input)
}

// waitUntil blocks until either the done channel is closed or the timeout is
// reached. A non-positive timeout waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-d:
		return nil
	case <-timer.C:
		return ErrTeardownTimeout
	}
}
