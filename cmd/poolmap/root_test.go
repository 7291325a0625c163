package main

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/poolmap/internal/config"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cfg, err := config.New()
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	cmd := newRootCmd(cfg, &out, &errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPrimesDefaults(t *testing.T) {
	out, _, err := execute(t, "primes", "--pool-size", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "61 is prime")
	assert.Contains(t, out, "15488801 is prime")
	assert.Contains(t, out, "Overall time:")
}

func TestPrimesWithComposite(t *testing.T) {
	out, _, err := execute(t, "primes", "61", "68", "--dispatch", "first-available")
	require.NoError(t, err)

	assert.Contains(t, out, "61 is prime")
	assert.Contains(t, out, "68 is not prime (2 x 34)")
}

func TestSqrt(t *testing.T) {
	out, _, err := execute(t, "sqrt", "4", "9", "16", "-p", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "sqrt: 3 item(s) on 3 worker(s)")
	assert.Contains(t, out, "all 3 item(s) succeeded")
}

func TestSqrtNegativeFailsCommand(t *testing.T) {
	out, _, err := execute(t, "sqrt", "4", "--", "-1")
	assert.ErrorIs(t, err, errItemsFailed)
	assert.Contains(t, out, "1 of 2 item(s) failed")
}

func TestRejectsBadArguments(t *testing.T) {
	_, _, err := execute(t, "primes", "sixty-one")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"sixty-one"`)
}

func TestRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative pool size", []string{"primes", "--pool-size", "-1"}},
		{"unknown dispatch", []string{"primes", "--dispatch", "random"}},
		{"unknown log format", []string{"primes", "--log-format", "xml"}},
		{"rate without burst", []string{"primes", "--rate", "5", "--burst", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs([]string{"1", "2", "3"}, func(s string) (int, error) {
		return len(s), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, got)
}
