//go:build linux

package cpu

import (
	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to a specific CPU core.
// Must be called after runtime.LockOSThread(). The returned function puts
// back the affinity the thread had before.
func pinToCore(cpuID int) (func(), error) {
	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		return func() {}, err
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return func() {}, err
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &prev)
	}, nil
}
