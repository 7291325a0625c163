package report

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/poolmap/pool"
)

func init() {
	color.NoColor = true
}

func TestFormatLatency(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0"},
		{500 * time.Nanosecond, "500ns"},
		{3 * time.Microsecond, "3µs"},
		{1500 * time.Nanosecond, "1.5µs"},
		{12 * time.Millisecond, "12ms"},
		{1234 * time.Microsecond, "1.23ms"},
		{2500 * time.Millisecond, "2.5s"},
		{90 * time.Second, "90s"},
		{-time.Second, "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLatency(tt.in), "FormatLatency(%v)", tt.in)
	}
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := RenderTable(&buf, []Row{
		{Index: 0, Input: "61", Output: "61 is prime", Worker: 0, Duration: 2 * time.Millisecond},
		{Index: 1, Input: "-4", Worker: 1, Err: errors.New("square root of a negative number")},
		{Index: 2, Input: "9", Worker: -1, Err: pool.ErrNotRun},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "61 is prime")
	assert.Contains(t, out, "square root of a negative number")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "2ms")
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, Summary{
		Workload: "primes",
		Items:    1200,
		Failed:   0,
		PoolSize: 2,
		Dispatch: "round-robin",
		Elapsed:  1500 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "primes: 1,200 item(s) on 2 worker(s), round-robin dispatch")
	assert.Contains(t, out, "all 1,200 item(s) succeeded")
	assert.Contains(t, out, "Overall time: 1.5s")

	buf.Reset()
	RenderSummary(&buf, Summary{Workload: "sqrt", Items: 3, Failed: 1, PoolSize: 1})
	assert.Contains(t, buf.String(), "1 of 3 item(s) failed")
}

func TestProgressHook(t *testing.T) {
	bar := NewProgressBar(io.Discard, 3, "testing")
	hook := ProgressHook(bar)

	for i := range 3 {
		hook(pool.CompletionEvent{Index: i})
	}
	assert.EqualValues(t, 3, bar.State().CurrentNum)
}
