//go:build !linux && !windows

package cpu

// pinToCore is a no-op where thread affinity cannot be set; the worker stays
// locked to its thread only.
func pinToCore(int) (func(), error) {
	return func() {}, ErrUnsupported
}
