package pool

import (
	"runtime"
	"testing"
	"time"
)

// dispatchConfig defines a test configuration for a dispatch mode
type dispatchConfig struct {
	name string
	opts []Option
}

// getAllDispatchModes returns every dispatch mode configured with the given
// pool size and any additional options.
func getAllDispatchModes(poolSize int, additionalOpts ...Option) []dispatchConfig {
	modes := []dispatchConfig{
		{
			name: "RoundRobin",
			opts: []Option{WithPoolSize(poolSize), WithDispatch(DispatchRoundRobin)},
		},
		{
			name: "FirstAvailable",
			opts: []Option{WithPoolSize(poolSize), WithDispatch(DispatchFirstAvailable)},
		},
	}
	for i := range modes {
		modes[i].opts = append(modes[i].opts, additionalOpts...)
	}
	return modes
}

func runDispatchTest(t *testing.T, testFunc func(t *testing.T, d dispatchConfig), poolSize int, additionalOpts ...Option) {
	for _, d := range getAllDispatchModes(poolSize, additionalOpts...) {
		t.Run(d.name, func(t *testing.T) {
			testFunc(t, d)
		})
	}
}

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// waitForGoroutines polls until the goroutine count drops back to at most
// baseline, failing the test if it does not within a second.
func waitForGoroutines(t *testing.T, baseline int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if runtime.NumGoroutine() <= baseline {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Errorf("goroutines leaked: baseline %d, now %d", baseline, runtime.NumGoroutine())
}
