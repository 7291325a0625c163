// Package cpu pins pool workers to CPU cores.
//
// Pinning locks the calling goroutine to its OS thread and restricts that
// thread to a single core. Every Pin must be paired with a call to the
// returned unpin function from the same goroutine.
package cpu

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned on platforms without thread affinity control.
var ErrUnsupported = errors.New("cpu pinning is not supported on this platform")

// Core maps a worker id onto a valid core index.
func Core(workerID int) int {
	n := runtime.NumCPU()
	if workerID < 0 {
		workerID = -workerID
	}
	return workerID % n
}

// Pin locks the current goroutine to its OS thread and pins the thread to
// Core(workerID). The returned function undoes both and is never nil, even
// when err is non-nil; in that case the goroutine is locked but unpinned.
func Pin(workerID int) (unpin func(), err error) {
	runtime.LockOSThread()

	restore, err := pinToCore(Core(workerID))
	return func() {
		restore()
		runtime.UnlockOSThread()
	}, err
}
