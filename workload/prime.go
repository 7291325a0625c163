// Package workload holds the reference functions used to exercise the pool:
// a CPU-bound primality test and a square root. Both are pure and match
// pool.ProcessFunc, so they can be handed to a PooledMapper directly.
package workload

import (
	"context"
	"fmt"
)

// KnownPrimes is the demo dataset: small primes followed by one large prime
// that dominates the batch's running time.
var KnownPrimes = []int64{61, 67, 71, 73, 79, 83, 89, 97, 101, 15488801}

// checkEvery is how many trial divisions run between context checks.
const checkEvery = 1 << 16

// Verdict is the outcome of a primality test.
type Verdict struct {
	N     int64
	Prime bool

	// Factor is the smallest divisor of N greater than one, or 0 when N is
	// prime or below 2.
	Factor int64
}

func (v Verdict) String() string {
	switch {
	case v.Prime:
		return fmt.Sprintf("%d is prime", v.N)
	case v.Factor != 0:
		return fmt.Sprintf("%d is not prime (%d x %d)", v.N, v.Factor, v.N/v.Factor)
	default:
		return fmt.Sprintf("%d is not prime", v.N)
	}
}

// Classify tests n for primality by trial division and reports the smallest
// factor when n is composite. Numbers below 2 are not prime. The context is
// checked between blocks of divisions so very large inputs can be abandoned.
func Classify(ctx context.Context, n int64) (Verdict, error) {
	v := Verdict{N: n}
	if n < 2 {
		return v, nil
	}
	if n%2 == 0 {
		if n == 2 {
			v.Prime = true
		} else {
			v.Factor = 2
		}
		return v, nil
	}

	for i, steps := int64(3), 0; i <= n/i; i += 2 {
		if n%i == 0 {
			v.Factor = i
			return v, nil
		}
		if steps++; steps%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return v, err
			}
		}
	}

	v.Prime = true
	return v, nil
}

// IsPrime reports whether n is prime.
func IsPrime(ctx context.Context, n int64) (bool, error) {
	v, err := Classify(ctx, n)
	return v.Prime, err
}
