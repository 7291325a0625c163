package workload

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		n      int64
		prime  bool
		factor int64
	}{
		{n: -7},
		{n: 0},
		{n: 1},
		{n: 2, prime: true},
		{n: 3, prime: true},
		{n: 4, factor: 2},
		{n: 9, factor: 3},
		{n: 61, prime: true},
		{n: 67, prime: true},
		{n: 68, factor: 2},
		{n: 91, factor: 7},
		{n: 15488801, prime: true},
		{n: 15488805, factor: 3},
	}

	for _, tt := range tests {
		v, err := Classify(context.Background(), tt.n)
		require.NoError(t, err)
		assert.Equal(t, tt.prime, v.Prime, "prime(%d)", tt.n)
		assert.Equal(t, tt.factor, v.Factor, "factor(%d)", tt.n)
	}
}

func TestClassify_KnownPrimes(t *testing.T) {
	for _, n := range KnownPrimes {
		ok, err := IsPrime(context.Background(), n)
		require.NoError(t, err)
		assert.True(t, ok, "%d should be prime", n)
	}
}

func TestClassify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The square of a prime above one million needs far more than checkEvery
	// divisions before its factor turns up.
	_, err := Classify(ctx, 1_000_003*1_000_003)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "61 is prime", Verdict{N: 61, Prime: true}.String())
	assert.Equal(t, "68 is not prime (2 x 34)", Verdict{N: 68, Factor: 2}.String())
	assert.Equal(t, "1 is not prime", Verdict{N: 1}.String())
}

func TestSqrt(t *testing.T) {
	for _, x := range []float64{0, 1, 4, 9, 16, 2} {
		got, err := Sqrt(context.Background(), x)
		require.NoError(t, err)
		assert.InDelta(t, math.Sqrt(x), got, 1e-12)
	}

	_, err := Sqrt(context.Background(), -1)
	assert.ErrorIs(t, err, ErrNegativeInput)
}
